// Package graph draws functions over a viewport with a planned grid.
//
// A Graph is the grid-rendering collaborator of the axis planner: it asks
// for marks once per axis on every render and draws minor, major and
// origin lines from them. Two back ends are provided, gonum/plot for
// PNG/SVG/PDF and go-echarts for interactive HTML.
package graph

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/axisgrid/internal/axis"
)

// DefaultSamples is how many points each function is evaluated at.
const DefaultSamples = 500

// Function is a named y = F(x) curve.
type Function struct {
	Name string
	F    func(x float64) float64
}

// Graph is a set of functions shown over the X and Y domains.
type Graph struct {
	Title     string
	X, Y      axis.Interval
	Functions []Function

	// Planner plans both axes. Its zero value is the default planner.
	Planner axis.Planner

	// MinSpacing is the smallest distance between major grid lines.
	// Zero selects plotaxis.DefaultMinSpacing.
	MinSpacing vg.Length

	// Samples per function; zero selects DefaultSamples.
	Samples int
}

// New returns an empty graph over the given domains.
func New(title string, x, y axis.Interval) *Graph {
	return &Graph{Title: title, X: x, Y: y}
}

// Add appends a function to the graph.
func (g *Graph) Add(name string, f func(float64) float64) {
	g.Functions = append(g.Functions, Function{Name: name, F: f})
}

// Validate checks the domains before anything is drawn.
func (g *Graph) Validate() error {
	if err := g.X.Validate(); err != nil {
		return fmt.Errorf("x domain: %w", err)
	}
	if err := g.Y.Validate(); err != nil {
		return fmt.Errorf("y domain: %w", err)
	}
	return nil
}

func (g *Graph) samples() int {
	if g.Samples > 1 {
		return g.Samples
	}
	return DefaultSamples
}

// Sample evaluates f at evenly spaced x across the X domain, dropping
// points that are not finite or fall outside the Y domain.
func (g *Graph) Sample(f Function) [][2]float64 {
	n := g.samples()
	pts := make([][2]float64, 0, n)
	dx := g.X.Length() / float64(n-1)
	for i := 0; i < n; i++ {
		x := g.X.Min + float64(i)*dx
		y := f.F(x)
		if math.IsNaN(y) || math.IsInf(y, 0) || !g.Y.Contains(y) {
			continue
		}
		pts = append(pts, [2]float64{x, y})
	}
	return pts
}

// Zoom returns a copy of g with both domains scaled by factor about
// their centres.
func (g *Graph) Zoom(factor float64) *Graph {
	out := *g
	out.Functions = append([]Function(nil), g.Functions...)
	out.X = scaleAbout(g.X, factor)
	out.Y = scaleAbout(g.Y, factor)
	return &out
}

func scaleAbout(iv axis.Interval, factor float64) axis.Interval {
	c := (iv.Min + iv.Max) / 2
	h := iv.Length() / 2 * factor
	return axis.Interval{Min: c - h, Max: c + h}
}

// Demo returns the sample graph used by the CLI and the HTTP server.
func Demo(x, y axis.Interval) *Graph {
	g := New("axisgrid demo", x, y)
	g.Add("sin(x)", math.Sin)
	g.Add("x²/4 - 1", func(x float64) float64 { return x*x/4 - 1 })
	g.Add("e^(-x²)·3", func(x float64) float64 { return 3 * math.Exp(-x*x) })
	g.Add("1/x", func(x float64) float64 { return 1 / x })
	return g
}
