package graph

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/fsutil"
)

func demo() *Graph {
	return Demo(axis.Interval{Min: -2.5, Max: 2.5}, axis.Interval{Min: -1, Max: 1})
}

func strokes(rec *recorder.Canvas) int {
	n := 0
	for _, a := range rec.Actions {
		if _, ok := a.(*recorder.Stroke); ok {
			n++
		}
	}
	return n
}

func TestGridLines_StrokesEveryMark(t *testing.T) {
	p := plot.New()
	p.X.Min, p.X.Max = -2.5, 2.5
	p.Y.Min, p.Y.Max = -1, 1

	gl := &gridLines{x: axis.Partitions{Count: 8}, y: axis.Partitions{Count: 4}}
	rec := &recorder.Canvas{}
	gl.Plot(draw.NewCanvas(rec, 400, 300), p)

	// 25 marks on x (minor 0.2) and 20 on y (minor 0.1, min excluded).
	require.Len(t, gl.xMarks, 25)
	require.Len(t, gl.yMarks, 20)
	assert.Equal(t, 45, strokes(rec))

	for _, m := range gl.xMarks {
		require.True(t, m.Mapped)
		assert.GreaterOrEqual(t, m.Fragment, 0.0)
		assert.LessOrEqual(t, m.Fragment, 400.0+1e-9)
		if m.Kind == axis.MarkOrigin {
			assert.InDelta(t, 200.0, m.Fragment, 1e-9)
		}
	}

	// A second render reuses the buffers.
	rec2 := &recorder.Canvas{}
	gl.Plot(draw.NewCanvas(rec2, 400, 300), p)
	assert.Equal(t, 45, strokes(rec2))
}

func TestGridLines_BadDomainDrawsNothing(t *testing.T) {
	p := plot.New()
	p.X.Min, p.X.Max = 1, 1
	p.Y.Min, p.Y.Max = 1, 1

	gl := &gridLines{x: axis.Partitions{Count: 8}, y: axis.Partitions{Count: 8}}
	rec := &recorder.Canvas{}
	gl.Plot(draw.NewCanvas(rec, 400, 300), p)
	assert.Zero(t, strokes(rec))
}

func TestLineStyle(t *testing.T) {
	assert.Equal(t, originLine, lineStyle(axis.MarkOrigin))
	assert.Equal(t, majorLine, lineStyle(axis.MarkMajor))
	assert.Equal(t, minorLine, lineStyle(axis.MarkMinor))
}

func TestGraph_Validate(t *testing.T) {
	g := New("bad", axis.Interval{Min: 1, Max: 0}, axis.Interval{Min: 0, Max: 1})
	err := g.Validate()
	require.ErrorIs(t, err, axis.ErrInvalidInterval)
	assert.Contains(t, err.Error(), "x domain")

	g = New("bad", axis.Interval{Min: 0, Max: 1}, axis.Interval{Min: math.NaN(), Max: 1})
	err = g.Validate()
	require.ErrorIs(t, err, axis.ErrInvalidInterval)
	assert.Contains(t, err.Error(), "y domain")
}

func TestGraph_Sample(t *testing.T) {
	g := demo()
	g.Samples = 11

	line := g.Sample(Function{Name: "id", F: func(x float64) float64 { return x / 2.5 }})
	require.Len(t, line, 11)
	assert.Equal(t, [2]float64{-2.5, -1}, line[0])
	assert.InDelta(t, 2.5, line[10][0], 1e-12)

	// x = 0 gives +Inf and |1/x| > 1 falls outside y.
	recip := g.Sample(Function{Name: "1/x", F: func(x float64) float64 { return 1 / x }})
	for _, p := range recip {
		assert.LessOrEqual(t, math.Abs(p[1]), 1.0)
		assert.False(t, math.IsInf(p[1], 0))
	}
	assert.Less(t, len(recip), 11)
}

func TestGraph_Zoom(t *testing.T) {
	g := demo()
	z := g.Zoom(0.5)
	assert.Equal(t, axis.Interval{Min: -1.25, Max: 1.25}, z.X)
	assert.Equal(t, axis.Interval{Min: -0.5, Max: 0.5}, z.Y)
	assert.Len(t, z.Functions, len(g.Functions))

	z.Add("extra", math.Cos)
	assert.Len(t, g.Functions, 4, "zoomed copy must not share function storage")
}

func TestGraph_Plot(t *testing.T) {
	g := demo()
	p, err := g.Plot(6*vg.Inch, 4*vg.Inch)
	require.NoError(t, err)
	assert.Equal(t, -2.5, p.X.Min)
	assert.Equal(t, 2.5, p.X.Max)
	assert.Equal(t, -1.0, p.Y.Min)
	assert.Equal(t, 1.0, p.Y.Max)
	assert.Equal(t, "axisgrid demo", p.Title.Text)

	var majors []float64
	for _, tk := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
		if !tk.IsMinor() {
			majors = append(majors, tk.Value)
		}
	}
	require.NotEmpty(t, majors)
	assert.Contains(t, majors, 0.0)
}

func TestGraph_Render(t *testing.T) {
	g := demo()

	var png bytes.Buffer
	require.NoError(t, g.Render(&png, 4*vg.Inch, 3*vg.Inch, "png"))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, g.Render(&svg, 4*vg.Inch, 3*vg.Inch, "svg"))
	assert.Contains(t, svg.String(), "<svg")

	err := g.Render(&bytes.Buffer{}, 4*vg.Inch, 3*vg.Inch, "bmp-ish")
	assert.Error(t, err)
}

func TestGraph_Save(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	g := demo()

	require.NoError(t, g.Save(fsys, "out/demo.SVG", 4*vg.Inch, 3*vg.Inch))
	data, err := fsys.ReadFile("out/demo.SVG")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	assert.Error(t, g.Save(fsys, "out/noext", 4*vg.Inch, 3*vg.Inch))
	assert.False(t, fsys.Exists("out/noext"))

	bad := demo()
	bad.Y = axis.Interval{Min: 1, Max: 1}
	assert.ErrorIs(t, bad.Save(fsys, "out/bad.png", 4*vg.Inch, 3*vg.Inch), axis.ErrInvalidInterval)
	assert.False(t, fsys.Exists("out/bad.png"))
}

func TestGraph_RenderHTML(t *testing.T) {
	g := demo()
	var buf bytes.Buffer
	require.NoError(t, g.RenderHTML(&buf, ""))

	out := buf.String()
	assert.Contains(t, out, "axisgrid demo")
	assert.Contains(t, out, "sin(x)")
	assert.Contains(t, out, DefaultAssetsHost)
	assert.True(t, strings.Contains(out, "splitNumber"), "axis split count missing")

	bad := New("bad", axis.Interval{Min: 0, Max: 0}, axis.Interval{Min: 0, Max: 1})
	assert.ErrorIs(t, bad.RenderHTML(&bytes.Buffer{}, ""), axis.ErrInvalidInterval)
}

func TestSplitCount(t *testing.T) {
	assert.Equal(t, 5, splitCount(axis.Interval{Min: -2.5, Max: 2.5}, axis.Step{Major: 1, Minor: 0.2}))
	assert.Equal(t, 1, splitCount(axis.Interval{Min: 0, Max: 1}, axis.Step{Major: 5, Minor: 1}))
}

func TestMarkData(t *testing.T) {
	x := []axis.Mark{
		{Kind: axis.MarkMinor, Position: 0.5},
		{Kind: axis.MarkMajor, Position: 1},
		{Kind: axis.MarkOrigin, Position: 0},
	}
	y := []axis.Mark{{Kind: axis.MarkMajor, Position: 3}}
	data := markData(x, y, -1, 2)
	require.Len(t, data, 3)
	assert.Equal(t, []interface{}{1.0, -1.0}, data[0].Value)
	assert.Equal(t, []interface{}{0.0, -1.0}, data[1].Value)
	assert.Equal(t, []interface{}{2.0, 3.0}, data[2].Value)
}

func TestAxisAt(t *testing.T) {
	assert.Equal(t, 0.0, axisAt(axis.Interval{Min: -1, Max: 1}))
	assert.Equal(t, 3.0, axisAt(axis.Interval{Min: 3, Max: 4}))
}

func TestPalette(t *testing.T) {
	assert.Nil(t, palette(0))

	six := palette(6)
	require.Len(t, six, 6)
	assert.Equal(t, six[:3], palette(3), "colours must not depend on n")

	seen := map[string]bool{}
	for _, c := range six {
		h := hexColor(c)
		assert.False(t, seen[h], "duplicate colour %s", h)
		seen[h] = true
	}
}

func TestHSL(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, A: 255}, hsl(0, 1, 0.5))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, hsl(1.0/3, 1, 0.5))
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, hsl(0.7, 0, 0.5))
	assert.Equal(t, "#ff0000", hexColor(hsl(0, 1, 0.5)))
}
