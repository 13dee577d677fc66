package graph

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/axis/plotaxis"
	"github.com/banshee-data/axisgrid/internal/fsutil"
	"github.com/banshee-data/axisgrid/internal/monitoring"
)

var (
	minorLine  = draw.LineStyle{Color: color.Gray{Y: 236}, Width: vg.Points(0.5)}
	majorLine  = draw.LineStyle{Color: color.Gray{Y: 200}, Width: vg.Points(0.75)}
	originLine = draw.LineStyle{Color: color.Gray{Y: 80}, Width: vg.Points(1)}
)

func lineStyle(k axis.MarkKind) draw.LineStyle {
	switch k {
	case axis.MarkOrigin:
		return originLine
	case axis.MarkMajor:
		return majorLine
	default:
		return minorLine
	}
}

// gridLines draws the planned marks of both axes. Marks are mapped by
// the planner straight into canvas coordinates, so no plot transform is
// involved. The mark slices are reused across renders; a gridLines value
// must not be drawn from two goroutines at once.
type gridLines struct {
	planner axis.Planner
	x, y    axis.DensityRequest

	xMarks, yMarks []axis.Mark
}

// Plot implements plot.Plotter.
func (gl *gridLines) Plot(c draw.Canvas, plt *plot.Plot) {
	var err error
	xDomain := axis.Interval{Min: plt.X.Min, Max: plt.X.Max}
	xFrag := axis.Interval{Min: float64(c.Min.X), Max: float64(c.Max.X)}
	if gl.xMarks, err = gl.planner.AppendTicks(gl.xMarks[:0], xDomain, gl.x, &xFrag); err != nil {
		monitoring.Logf("graph: skipping vertical grid over %v: %v", xDomain, err)
	}
	yDomain := axis.Interval{Min: plt.Y.Min, Max: plt.Y.Max}
	yFrag := axis.Interval{Min: float64(c.Min.Y), Max: float64(c.Max.Y)}
	if gl.yMarks, err = gl.planner.AppendTicks(gl.yMarks[:0], yDomain, gl.y, &yFrag); err != nil {
		monitoring.Logf("graph: skipping horizontal grid over %v: %v", yDomain, err)
	}

	// Minor lines first so major and origin lines stay on top.
	for _, kind := range []axis.MarkKind{axis.MarkMinor, axis.MarkMajor, axis.MarkOrigin} {
		sty := lineStyle(kind)
		for _, m := range gl.xMarks {
			if m.Kind == kind {
				x := vg.Length(m.Fragment)
				c.StrokeLine2(sty, x, c.Min.Y, x, c.Max.Y)
			}
		}
		for _, m := range gl.yMarks {
			if m.Kind == kind {
				y := vg.Length(m.Fragment)
				c.StrokeLine2(sty, c.Min.X, y, c.Max.X, y)
			}
		}
	}
}

// Plot builds a gonum plot of the graph for a canvas of the given size.
// Axis labels and grid lines come from the same density, so labels always
// sit on major lines.
func (g *Graph) Plot(width, height vg.Length) (*plot.Plot, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	xt := plotaxis.ForLength(g.X, width, g.MinSpacing)
	xt.Planner = g.Planner
	yt := plotaxis.ForLength(g.Y, height, g.MinSpacing)
	yt.Planner = g.Planner

	p := plot.New()
	p.Title.Text = g.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Tick.Marker = xt
	p.Y.Tick.Marker = yt
	p.Add(&gridLines{planner: g.Planner, x: xt.Density, y: yt.Density})

	colors := palette(len(g.Functions))
	for i, f := range g.Functions {
		fn := plotter.NewFunction(f.F)
		fn.Samples = g.samples()
		fn.Color = colors[i]
		fn.Width = vg.Points(1.5)
		p.Add(fn)
		p.Legend.Add(f.Name, fn)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	// Set last: adding plotters may widen the axes to fit their data.
	p.X.Min, p.X.Max = g.X.Min, g.X.Max
	p.Y.Min, p.Y.Max = g.Y.Min, g.Y.Max
	return p, nil
}

// Render draws the graph in the given format ("png", "svg", "pdf", ...).
func (g *Graph) Render(w io.Writer, width, height vg.Length, format string) error {
	wt, err := g.writerTo(width, height, format)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s plot: %w", format, err)
	}
	return nil
}

func (g *Graph) writerTo(width, height vg.Length, format string) (io.WriterTo, error) {
	p, err := g.Plot(width, height)
	if err != nil {
		return nil, err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return nil, fmt.Errorf("create %s writer: %w", format, err)
	}
	return wt, nil
}

// Save renders the graph to path on fsys, picking the format from the
// file extension.
func (g *Graph) Save(fsys fsutil.FileSystem, path string, width, height vg.Length) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return fmt.Errorf("no file extension in %q to pick an image format", path)
	}
	// Draw before creating the file so a bad domain leaves nothing behind.
	wt, err := g.writerTo(width, height, format)
	if err != nil {
		return err
	}
	return fsutil.WriteFile(fsys, path, func(w io.Writer) error {
		if _, err := wt.WriteTo(w); err != nil {
			return fmt.Errorf("write %s plot: %w", format, err)
		}
		return nil
	})
}
