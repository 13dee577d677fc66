// Command axisgrid plans axis tick marks and renders graphs with them.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/axisgrid/internal/api"
	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/config"
	"github.com/banshee-data/axisgrid/internal/fsutil"
	"github.com/banshee-data/axisgrid/internal/graph"
	"github.com/banshee-data/axisgrid/internal/monitoring"
	"github.com/banshee-data/axisgrid/internal/timeutil"
	"github.com/banshee-data/axisgrid/internal/version"
	"github.com/banshee-data/axisgrid/internal/viewport"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config string `name:"config" short:"c" help:"Config file (JSON, comments allowed)" type:"path"`
	Quiet  bool   `short:"q" help:"Silence diagnostic logging"`

	Output io.Writer          `kong:"-"`
	FS     fsutil.FileSystem  `kong:"-"`
	cfg    *config.AxisConfig `kong:"-"`
}

// AxisConfig loads the config file once. Without --config the compiled
// defaults apply.
func (g *Globals) AxisConfig() (*config.AxisConfig, error) {
	if g.cfg != nil {
		return g.cfg, nil
	}
	if g.Config == "" {
		g.cfg = &config.AxisConfig{}
		return g.cfg, nil
	}
	cfg, err := config.LoadAxisConfig(g.Config)
	if err != nil {
		return nil, err
	}
	g.cfg = cfg
	return cfg, nil
}

// CLI defines the command-line interface for axisgrid.
type CLI struct {
	Globals

	Ticks   TicksCmd   `cmd:"" help:"Plan the marks of one axis"`
	Plot    PlotCmd    `cmd:"" help:"Render the demo graph to PNG, SVG or PDF"`
	Chart   ChartCmd   `cmd:"" help:"Render the demo graph as an interactive HTML chart"`
	Animate AnimateCmd `cmd:"" help:"Replay a zoom and report per-frame mark counts"`
	Serve   ServeCmd   `cmd:"" help:"Start the HTTP server"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// intervalFlag parses a "min,max" flag value.
func intervalFlag(name string, v []float64) (axis.Interval, error) {
	if len(v) != 2 {
		return axis.Interval{}, fmt.Errorf("--%s takes min,max; got %d values", name, len(v))
	}
	return axis.Interval{Min: v[0], Max: v[1]}, nil
}

// TicksCmd plans one axis and prints its marks.
type TicksCmd struct {
	Domain     []float64 `required:"" sep:"," help:"Domain as min,max (use --domain=-2.5,2.5 for negative bounds)"`
	Partitions int       `short:"n" help:"Fixed partition count; defaults to the config value"`
	Fragment   []float64 `sep:"," help:"Map marks into this fragment interval, as min,max"`
	Spacing    float64   `help:"Minimum fragments between major marks when a fragment is given; defaults to the config value"`
	Format     string    `short:"f" enum:"table,json" default:"table" help:"Output format (table, json)"`
}

func (c *TicksCmd) Run(g *Globals) error {
	cfg, err := g.AxisConfig()
	if err != nil {
		return err
	}
	domain, err := intervalFlag("domain", c.Domain)
	if err != nil {
		return err
	}
	var fragment *axis.Interval
	if len(c.Fragment) > 0 {
		f, err := intervalFlag("fragment", c.Fragment)
		if err != nil {
			return err
		}
		fragment = &f
	}

	density := cfg.Density(domain, fragment)
	switch {
	case c.Partitions != 0:
		density = axis.Partitions{Count: c.Partitions}
	case fragment != nil && c.Spacing != 0:
		density = axis.FragmentsFor(domain, *fragment, c.Spacing)
	}

	planner := cfg.Planner()
	step, err := planner.Plan(domain, density)
	if err != nil {
		return err
	}
	marks, err := planner.AppendMarks(nil, domain, step, fragment)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		enc := json.NewEncoder(g.Output)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"domain": domain,
			"step":   step,
			"marks":  marks,
		})
	}

	fmt.Fprintf(g.Output, "domain %v  major %s  minor %s  marks %d\n",
		domain, axis.FormatLabel(step.Major, step.Major), axis.FormatLabel(step.Minor, step.Minor), len(marks))
	for _, m := range marks {
		label := ""
		if m.Kind.IsMajor() {
			label = axis.FormatLabel(m.Position, step.Major)
		}
		if m.Mapped {
			fmt.Fprintf(g.Output, "  %-7s %-24g %-12.3f %s\n", m.Kind, m.Position, m.Fragment, label)
		} else {
			fmt.Fprintf(g.Output, "  %-7s %-24g %s\n", m.Kind, m.Position, label)
		}
	}
	return nil
}

// GraphFlags are shared by plot and chart.
type GraphFlags struct {
	X     []float64 `sep:"," default:"-5,5" help:"X domain as min,max"`
	Y     []float64 `sep:"," default:"-3,3" help:"Y domain as min,max"`
	Title string    `default:"axisgrid demo" help:"Graph title"`
}

func (f GraphFlags) graph(cfg *config.AxisConfig) (*graph.Graph, error) {
	x, err := intervalFlag("x", f.X)
	if err != nil {
		return nil, err
	}
	y, err := intervalFlag("y", f.Y)
	if err != nil {
		return nil, err
	}
	g := graph.Demo(x, y)
	g.Title = f.Title
	g.Planner = cfg.Planner()
	g.MinSpacing = vg.Length(cfg.GetMinFragmentsPerTick())
	g.Samples = cfg.GetSamples()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// PlotCmd renders the demo graph with gonum/plot.
type PlotCmd struct {
	GraphFlags `embed:""`

	Out    string `arg:"" help:"Output file; the extension picks the format (png, svg, pdf)" type:"path"`
	Width  string `help:"Image width, e.g. 6in or 400pt; defaults to the config value"`
	Height string `help:"Image height; defaults to the config value"`
}

func (c *PlotCmd) Run(g *Globals) error {
	cfg, err := g.AxisConfig()
	if err != nil {
		return err
	}
	gr, err := c.graph(cfg)
	if err != nil {
		return err
	}
	width, height := cfg.GetPlotSize()
	if width, err = lengthFlag("width", c.Width, width); err != nil {
		return err
	}
	if height, err = lengthFlag("height", c.Height, height); err != nil {
		return err
	}
	if err := gr.Save(g.FS, c.Out, width, height); err != nil {
		return err
	}
	monitoring.Opsf("wrote %s (%s x %s)", c.Out, width, height)
	return nil
}

// lengthFlag parses an image dimension such as "6in", falling back to def
// when v is empty.
func lengthFlag(name, v string, def vg.Length) (vg.Length, error) {
	if v == "" {
		return def, nil
	}
	l, err := vg.ParseLength(v)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s %q: %w", name, v, err)
	}
	if l <= 0 || l > 100*vg.Inch {
		return 0, fmt.Errorf("invalid --%s %q: must be above zero and at most 100in", name, v)
	}
	return l, nil
}

// ChartCmd renders the demo graph with go-echarts.
type ChartCmd struct {
	GraphFlags `embed:""`

	Out string `arg:"" help:"Output HTML file" type:"path"`
}

func (c *ChartCmd) Run(g *Globals) error {
	cfg, err := g.AxisConfig()
	if err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(c.Out)); ext != ".html" && ext != ".htm" {
		return fmt.Errorf("chart output must be .html, got %q", c.Out)
	}
	gr, err := c.graph(cfg)
	if err != nil {
		return err
	}
	err = fsutil.WriteFile(g.FS, c.Out, func(w io.Writer) error {
		return gr.RenderHTML(w, cfg.GetAssetsHost())
	})
	if err != nil {
		return err
	}
	monitoring.Opsf("wrote %s", c.Out)
	return nil
}

// AnimateCmd replays a zoom on a viewport.
type AnimateCmd struct {
	X        []float64     `sep:"," default:"-5,5" help:"Starting X domain as min,max"`
	Y        []float64     `sep:"," default:"-3,3" help:"Starting Y domain as min,max"`
	Frames   int           `default:"60" help:"Number of frames"`
	Factor   float64       `default:"0.95" help:"Zoom factor per frame; below 1 zooms in"`
	Width    float64       `default:"800" help:"Screen width in fragments"`
	Height   float64       `default:"600" help:"Screen height in fragments"`
	Interval time.Duration `help:"Frame interval; defaults to the config value"`
	Verbose  bool          `short:"v" help:"Print every frame"`

	clock timeutil.Clock `kong:"-"`
}

func (c *AnimateCmd) Run(g *Globals) error {
	cfg, err := g.AxisConfig()
	if err != nil {
		return err
	}
	x, err := intervalFlag("x", c.X)
	if err != nil {
		return err
	}
	y, err := intervalFlag("y", c.Y)
	if err != nil {
		return err
	}
	v, err := viewport.New(cfg.Planner(), x, y,
		axis.Interval{Min: 0, Max: c.Width}, axis.Interval{Min: c.Height, Max: 0},
		cfg.GetMinFragmentsPerTick())
	if err != nil {
		return err
	}

	interval := c.Interval
	if interval == 0 {
		interval = cfg.GetFrameInterval()
	}
	clock := c.clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &viewport.Animator{Viewport: v, Clock: clock, Interval: interval}
	sum, err := a.Run(ctx, c.Frames, c.Factor, func(fs viewport.FrameStats) {
		if !c.Verbose {
			return
		}
		status := "ok"
		if fs.Err != nil {
			status = fs.Err.Error()
		}
		fmt.Fprintf(g.Output, "frame %3d  x %-28v marks %3d  y %-28v marks %3d  %s\n",
			fs.Index, fs.Frame.X, len(fs.Frame.XMarks), fs.Frame.Y, len(fs.Frame.YMarks), status)
	})
	fmt.Fprintf(g.Output, "frames %d  failed %d  marks %d..%d  arena growth %d  run %s\n",
		sum.Frames, sum.Failed, sum.MinMarks, sum.MaxMarks, sum.Grown, sum.RunID)
	return err
}

// ServeCmd starts the HTTP server.
type ServeCmd struct {
	Listen string `short:"l" help:"Listen address; defaults to the config value"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.AxisConfig()
	if err != nil {
		return err
	}
	addr := c.Listen
	if addr == "" {
		addr = cfg.GetListen()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return api.NewServer(cfg).ListenAndServe(ctx, addr)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintln(g.Output, version.String())
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("axisgrid"),
		kong.Description("Nice-number axis tick planning"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	cli.Output = os.Stdout
	cli.FS = fsutil.OSFileSystem{}
	if cli.Quiet {
		monitoring.SetLogger(nil)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
