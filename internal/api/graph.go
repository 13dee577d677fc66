package api

import (
	"bytes"
	"net/http"
	"net/url"

	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/graph"
	"github.com/banshee-data/axisgrid/internal/httputil"
	"github.com/banshee-data/axisgrid/internal/monitoring"
)

// Demo window used when the request does not name one.
var (
	defaultGraphX = axis.Interval{Min: -5, Max: 5}
	defaultGraphY = axis.Interval{Min: -3, Max: 3}
)

// demoGraph builds the demo graph over the window in q (xmin, xmax,
// ymin, ymax).
func (s *Server) demoGraph(q url.Values) (*graph.Graph, error) {
	x, err := intervalParam(q, "xmin", "xmax")
	if err != nil {
		return nil, err
	}
	if x == nil {
		x = &defaultGraphX
	}
	y, err := intervalParam(q, "ymin", "ymax")
	if err != nil {
		return nil, err
	}
	if y == nil {
		y = &defaultGraphY
	}
	g := graph.Demo(*x, *y)
	g.Planner = s.planner
	g.MinSpacing = vg.Length(s.cfg.GetMinFragmentsPerTick())
	g.Samples = s.cfg.GetSamples()
	return g, nil
}

func (s *Server) handleGraphHTML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	g, err := s.demoGraph(r.URL.Query())
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := g.RenderHTML(&buf, s.cfg.GetAssetsHost()); err != nil {
		httputil.WriteMappedError(w, err, plannerErrors)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		monitoring.Logf("write graph html: %v", err)
	}
}

// handleGraphImage renders the demo graph with gonum/plot. width and
// height accept lengths such as "6in" or "400pt".
func (s *Server) handleGraphImage(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.MethodNotAllowed(w)
			return
		}
		q := r.URL.Query()
		g, err := s.demoGraph(q)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		width, height := s.cfg.GetPlotSize()
		for key, dst := range map[string]*vg.Length{"width": &width, "height": &height} {
			v := q.Get(key)
			if v == "" {
				continue
			}
			l, err := vg.ParseLength(v)
			if err != nil || l <= 0 || l > 100*vg.Inch {
				httputil.BadRequest(w, "invalid '"+key+"' parameter "+v)
				return
			}
			*dst = l
		}

		// Render into a buffer so a failure can still produce a JSON error.
		var buf bytes.Buffer
		if err := g.Render(&buf, width, height, format); err != nil {
			httputil.WriteMappedError(w, err, plannerErrors)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if _, err := buf.WriteTo(w); err != nil {
			monitoring.Logf("write graph %s: %v", format, err)
		}
	}
}
