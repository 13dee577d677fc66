package graph

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/axis/plotaxis"
)

// DefaultAssetsHost serves the echarts JavaScript bundle.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// htmlSize is the chart edge in CSS pixels.
const htmlSize = 900

// RenderHTML writes the graph as an interactive go-echarts scatter chart.
// echarts draws its own split lines; their count is set from the planned
// major step so they land where the gonum renderer puts major lines, and
// the planned major marks are added as their own series.
func (g *Graph) RenderHTML(w io.Writer, assetsHost string) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if assetsHost == "" {
		assetsHost = DefaultAssetsHost
	}

	spacing := float64(g.MinSpacing)
	if spacing <= 0 {
		spacing = float64(plotaxis.DefaultMinSpacing)
	}
	screen := axis.Interval{Min: 0, Max: htmlSize}
	xStep, err := g.Planner.Plan(g.X, axis.FragmentsFor(g.X, screen, spacing))
	if err != nil {
		return fmt.Errorf("plan x axis: %w", err)
	}
	yStep, err := g.Planner.Plan(g.Y, axis.FragmentsFor(g.Y, screen, spacing))
	if err != nil {
		return fmt.Errorf("plan y axis: %w", err)
	}

	size := fmt.Sprintf("%dpx", htmlSize)
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: g.Title, Width: size, Height: size, AssetsHost: assetsHost}),
		charts.WithTitleOpts(opts.Title{Title: g.Title, Subtitle: fmt.Sprintf("x=%v major=%g y=%v major=%g", g.X, xStep.Major, g.Y, yStep.Major)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value", Min: g.X.Min, Max: g.X.Max, Name: "x", NameLocation: "middle", NameGap: 25,
			SplitNumber: splitCount(g.X, xStep), SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value", Min: g.Y.Min, Max: g.Y.Max, Name: "y", NameLocation: "middle", NameGap: 30,
			SplitNumber: splitCount(g.Y, yStep), SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
	)

	colors := palette(len(g.Functions))
	for i, f := range g.Functions {
		pts := g.Sample(f)
		data := make([]opts.ScatterData, len(pts))
		for j, p := range pts {
			data[j] = opts.ScatterData{Value: []interface{}{p[0], p[1]}}
		}
		scatter.AddSeries(f.Name, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}),
		)
	}

	xMarks, err := g.Planner.AppendMarks(nil, g.X, xStep, nil)
	if err != nil {
		return fmt.Errorf("x marks: %w", err)
	}
	yMarks, err := g.Planner.AppendMarks(nil, g.Y, yStep, nil)
	if err != nil {
		return fmt.Errorf("y marks: %w", err)
	}
	scatter.AddSeries("marks", markData(xMarks, yMarks, axisAt(g.Y), axisAt(g.X)),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#505050"}),
	)

	return scatter.Render(w)
}

// splitCount is how many major steps fit across domain, at least one.
func splitCount(domain axis.Interval, step axis.Step) int {
	n := int(domain.Length() / step.Major)
	if n < 1 {
		return 1
	}
	return n
}

// axisAt is where the other axis crosses: zero when visible, else the
// lower bound.
func axisAt(iv axis.Interval) float64 {
	if iv.Contains(0) {
		return 0
	}
	return iv.Min
}

// markData places the major marks of each axis on that axis: x marks at
// height xAxisY, y marks at yAxisX.
func markData(xMarks, yMarks []axis.Mark, xAxisY, yAxisX float64) []opts.ScatterData {
	var data []opts.ScatterData
	for _, m := range xMarks {
		if m.Kind.IsMajor() {
			data = append(data, opts.ScatterData{Value: []interface{}{m.Position, xAxisY}})
		}
	}
	for _, m := range yMarks {
		if m.Kind.IsMajor() {
			data = append(data, opts.ScatterData{Value: []interface{}{yAxisX, m.Position}})
		}
	}
	return data
}
