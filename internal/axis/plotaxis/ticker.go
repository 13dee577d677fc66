// Package plotaxis plugs the axis planner into gonum/plot.
package plotaxis

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/monitoring"
)

// DefaultMinSpacing is the smallest distance between labelled marks.
const DefaultMinSpacing = vg.Length(48)

// Ticker implements plot.Ticker with the axis planner. Major and origin
// marks carry a label; minor marks get an empty label, which gonum/plot
// draws as a short unlabelled tick.
type Ticker struct {
	Density axis.DensityRequest
	Planner axis.Planner

	// Format renders a major mark. It defaults to axis.FormatLabel.
	Format func(position, major float64) string
}

var _ plot.Ticker = Ticker{}

// ForLength returns a Ticker for an axis drawn over length, keeping
// labelled marks at least minSpacing apart. domain is the range the
// axis will show; the density scales with it.
func ForLength(domain axis.Interval, length, minSpacing vg.Length) Ticker {
	if minSpacing <= 0 {
		minSpacing = DefaultMinSpacing
	}
	return Ticker{
		Density: axis.FragmentsFor(domain, axis.Interval{Min: 0, Max: float64(length)}, float64(minSpacing)),
	}
}

// Ticks implements plot.Ticker. A planner error yields no ticks: the
// axis is drawn without a grid for this render rather than failing it.
func (t Ticker) Ticks(min, max float64) []plot.Tick {
	domain := axis.Interval{Min: min, Max: max}
	density := t.Density
	if density == nil {
		density = axis.Partitions{Count: 8}
	}

	step, err := t.Planner.Plan(domain, density)
	if err != nil {
		monitoring.Logf("plotaxis: no ticks for %v: %v", domain, err)
		return nil
	}
	marks, err := t.Planner.AppendMarks(nil, domain, step, nil)
	if err != nil {
		monitoring.Logf("plotaxis: no ticks for %v: %v", domain, err)
		return nil
	}

	format := t.Format
	if format == nil {
		format = axis.FormatLabel
	}
	ticks := make([]plot.Tick, len(marks))
	for i, m := range marks {
		ticks[i].Value = m.Position
		if m.Kind.IsMajor() {
			ticks[i].Label = format(m.Position, step.Major)
		}
	}
	return ticks
}
