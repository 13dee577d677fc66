package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/axis/plotaxis"
	"github.com/banshee-data/axisgrid/internal/graph"
)

// DefaultConfigPath is the path to the canonical defaults file.
const DefaultConfigPath = "config/axis.defaults.json"

// Defaults used when a field is absent.
const (
	DefaultPartitions    = 8
	DefaultPlotWidth     = "6in"
	DefaultPlotHeight    = "4in"
	DefaultListen        = ":8090"
	DefaultFrameInterval = 16 * time.Millisecond
)

// AxisConfig holds planner, rendering and server settings. Fields are
// pointers so a partial file leaves the rest at their defaults.
type AxisConfig struct {
	// Planner params
	Partitions          *int     `json:"partitions,omitempty"`
	MinFragmentsPerTick *float64 `json:"min_fragments_per_tick,omitempty"`
	Epsilon             *float64 `json:"epsilon,omitempty"`
	ToleranceMode       *string  `json:"tolerance_mode,omitempty"` // "absolute" or "scaled"
	MaxMarks            *int     `json:"max_marks,omitempty"`

	// Rendering params
	PlotWidth  *string `json:"plot_width,omitempty"` // length string like "6in" or "400pt"
	PlotHeight *string `json:"plot_height,omitempty"`
	Samples    *int    `json:"samples,omitempty"`

	// Server and animation params
	Listen        *string `json:"listen,omitempty"`
	AssetsHost    *string `json:"assets_host,omitempty"`
	FrameInterval *string `json:"frame_interval,omitempty"` // duration string like "16ms"
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultAxisConfig returns a config with every field set to its default.
func DefaultAxisConfig() *AxisConfig {
	return &AxisConfig{
		Partitions:          ptrInt(DefaultPartitions),
		MinFragmentsPerTick: ptrFloat64(float64(plotaxis.DefaultMinSpacing)),
		Epsilon:             ptrFloat64(axis.Epsilon),
		ToleranceMode:       ptrString(axis.ToleranceAbsolute.String()),
		MaxMarks:            ptrInt(axis.DefaultMaxMarks),
		PlotWidth:           ptrString(DefaultPlotWidth),
		PlotHeight:          ptrString(DefaultPlotHeight),
		Samples:             ptrInt(graph.DefaultSamples),
		Listen:              ptrString(DefaultListen),
		AssetsHost:          ptrString(""),
		FrameInterval:       ptrString(DefaultFrameInterval.String()),
	}
}

// LoadAxisConfig loads an AxisConfig from a JSON file. Comments and
// trailing commas are accepted. Fields omitted from the file keep their
// defaults through the Get* methods.
func LoadAxisConfig(path string) (*AxisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseAxisConfig(data)
}

// ParseAxisConfig parses and validates config bytes.
func ParseAxisConfig(data []byte) (*AxisConfig, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg := &AxisConfig{}
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *AxisConfig) Validate() error {
	if c.Partitions != nil && *c.Partitions <= 0 {
		return fmt.Errorf("partitions must be positive, got %d", *c.Partitions)
	}
	if c.MinFragmentsPerTick != nil && !(*c.MinFragmentsPerTick > 0) {
		return fmt.Errorf("min_fragments_per_tick must be positive, got %g", *c.MinFragmentsPerTick)
	}
	if c.Epsilon != nil && (!(*c.Epsilon > 0) || *c.Epsilon >= 1) {
		return fmt.Errorf("epsilon must be in (0, 1), got %g", *c.Epsilon)
	}
	if c.ToleranceMode != nil {
		if _, err := axis.ParseToleranceMode(*c.ToleranceMode); err != nil {
			return err
		}
	}
	if c.MaxMarks != nil && *c.MaxMarks <= 0 {
		return fmt.Errorf("max_marks must be positive, got %d", *c.MaxMarks)
	}
	for name, v := range map[string]*string{"plot_width": c.PlotWidth, "plot_height": c.PlotHeight} {
		if v == nil {
			continue
		}
		l, err := vg.ParseLength(*v)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", name, *v, err)
		}
		if l <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, *v)
		}
	}
	if c.Samples != nil && *c.Samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", *c.Samples)
	}
	if c.FrameInterval != nil && *c.FrameInterval != "" {
		d, err := time.ParseDuration(*c.FrameInterval)
		if err != nil {
			return fmt.Errorf("invalid frame_interval '%s': %w", *c.FrameInterval, err)
		}
		if d < 0 {
			return fmt.Errorf("frame_interval must be non-negative, got %s", d)
		}
	}
	return nil
}

// GetPartitions returns the partitions value or the default.
func (c *AxisConfig) GetPartitions() int {
	if c.Partitions == nil {
		return DefaultPartitions
	}
	return *c.Partitions
}

// GetMinFragmentsPerTick returns the min_fragments_per_tick value or the default.
func (c *AxisConfig) GetMinFragmentsPerTick() float64 {
	if c.MinFragmentsPerTick == nil {
		return float64(plotaxis.DefaultMinSpacing)
	}
	return *c.MinFragmentsPerTick
}

// GetTolerance returns the configured coincidence tolerance.
func (c *AxisConfig) GetTolerance() axis.Tolerance {
	var tol axis.Tolerance
	if c.ToleranceMode != nil {
		// Validate has already rejected unknown modes.
		tol.Mode, _ = axis.ParseToleranceMode(*c.ToleranceMode)
	}
	if c.Epsilon != nil {
		tol.Epsilon = *c.Epsilon
	}
	return tol
}

// GetMaxMarks returns the max_marks value or the default.
func (c *AxisConfig) GetMaxMarks() int {
	if c.MaxMarks == nil {
		return axis.DefaultMaxMarks
	}
	return *c.MaxMarks
}

// GetPlotSize returns the plot width and height.
func (c *AxisConfig) GetPlotSize() (width, height vg.Length) {
	return parseLength(c.PlotWidth, DefaultPlotWidth), parseLength(c.PlotHeight, DefaultPlotHeight)
}

func parseLength(v *string, def string) vg.Length {
	if v != nil {
		if l, err := vg.ParseLength(*v); err == nil && l > 0 {
			return l
		}
	}
	l, _ := vg.ParseLength(def)
	return l
}

// GetSamples returns the samples value or the default.
func (c *AxisConfig) GetSamples() int {
	if c.Samples == nil {
		return graph.DefaultSamples
	}
	return *c.Samples
}

// GetListen returns the listen address or the default.
func (c *AxisConfig) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return DefaultListen
	}
	return *c.Listen
}

// GetAssetsHost returns the echarts assets host, empty for the library default.
func (c *AxisConfig) GetAssetsHost() string {
	if c.AssetsHost == nil {
		return ""
	}
	return *c.AssetsHost
}

// GetFrameInterval parses and returns the FrameInterval as a time.Duration.
func (c *AxisConfig) GetFrameInterval() time.Duration {
	if c.FrameInterval == nil || *c.FrameInterval == "" {
		return DefaultFrameInterval
	}
	d, err := time.ParseDuration(*c.FrameInterval)
	if err != nil {
		return DefaultFrameInterval // default on parse error
	}
	return d
}

// Planner builds the axis planner described by the config.
func (c *AxisConfig) Planner() axis.Planner {
	return axis.Planner{Tolerance: c.GetTolerance(), MaxMarks: c.GetMaxMarks()}
}

// Density returns the density request for domain. With a fragment the
// density follows its length and min_fragments_per_tick; without one it
// is a fixed partition count.
func (c *AxisConfig) Density(domain axis.Interval, fragment *axis.Interval) axis.DensityRequest {
	if fragment == nil {
		return axis.Partitions{Count: c.GetPartitions()}
	}
	return axis.FragmentsFor(domain, *fragment, c.GetMinFragmentsPerTick())
}
