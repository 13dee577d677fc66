package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/httputil"
)

// TicksResponse is the body of GET /api/ticks.
type TicksResponse struct {
	Domain   axis.Interval  `json:"domain"`
	Fragment *axis.Interval `json:"fragment,omitempty"`
	Step     axis.Step      `json:"step"`
	Marks    []MarkJSON     `json:"marks"`
}

// MarkJSON is a mark with its label. Only major and origin marks are
// labelled.
type MarkJSON struct {
	axis.Mark
	Label string `json:"label,omitempty"`
}

// handleTicks plans one axis:
//
//	GET /api/ticks?min=-2.5&max=2.5&partitions=8
//	GET /api/ticks?min=0&max=100&fragments_per_unit=6&min_spacing=48
//	GET /api/ticks?min=0&max=100&frag_min=0&frag_max=600
//
// With neither partitions nor fragments_per_unit the density comes from
// the server config: from the fragment when one is given, otherwise its
// partition count.
func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	q := r.URL.Query()

	domain, err := intervalParam(q, "min", "max")
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if domain == nil {
		httputil.BadRequest(w, "min and max are required")
		return
	}
	fragment, err := intervalParam(q, "frag_min", "frag_max")
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	density, err := s.densityParam(q, *domain, fragment)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	step, err := s.planner.Plan(*domain, density)
	if err != nil {
		httputil.WriteMappedError(w, err, plannerErrors)
		return
	}
	marks, err := s.planner.AppendMarks(nil, *domain, step, fragment)
	if err != nil {
		httputil.WriteMappedError(w, err, plannerErrors)
		return
	}

	resp := TicksResponse{Domain: *domain, Fragment: fragment, Step: step, Marks: make([]MarkJSON, len(marks))}
	for i, m := range marks {
		resp.Marks[i].Mark = m
		if m.Kind.IsMajor() {
			resp.Marks[i].Label = axis.FormatLabel(m.Position, step.Major)
		}
	}
	httputil.WriteJSONOK(w, resp)
}

func (s *Server) densityParam(q url.Values, domain axis.Interval, fragment *axis.Interval) (axis.DensityRequest, error) {
	if v := q.Get("partitions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid 'partitions' parameter %q", v)
		}
		return axis.Partitions{Count: n}, nil
	}
	if v := q.Get("fragments_per_unit"); v != "" {
		fpu, err := floatParam(q, "fragments_per_unit")
		if err != nil {
			return nil, err
		}
		spacing := s.cfg.GetMinFragmentsPerTick()
		if q.Get("min_spacing") != "" {
			if spacing, err = floatParam(q, "min_spacing"); err != nil {
				return nil, err
			}
		}
		return axis.Fragments{FragmentsPerUnit: fpu, MinFragmentsPerTick: spacing}, nil
	}
	return s.cfg.Density(domain, fragment), nil
}

// intervalParam reads a pair of bounds. Both absent yields nil.
func intervalParam(q url.Values, minKey, maxKey string) (*axis.Interval, error) {
	hasMin, hasMax := q.Get(minKey) != "", q.Get(maxKey) != ""
	if !hasMin && !hasMax {
		return nil, nil
	}
	if hasMin != hasMax {
		return nil, fmt.Errorf("'%s' and '%s' must be given together", minKey, maxKey)
	}
	lo, err := floatParam(q, minKey)
	if err != nil {
		return nil, err
	}
	hi, err := floatParam(q, maxKey)
	if err != nil {
		return nil, err
	}
	return &axis.Interval{Min: lo, Max: hi}, nil
}

func floatParam(q url.Values, key string) (float64, error) {
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid '%s' parameter %q", key, q.Get(key))
	}
	return v, nil
}
