// Package axis plans the tick marks of a numeric axis.
//
// Given a visible domain interval and a requested density, the planner
// picks a "nice" major step from {0.2, 0.5, 1}·10^k and a subordinate
// minor step, aligns both grids to multiples of their step anchored at
// zero, and walks them together, classifying every minor position as
// MINOR, MAJOR or ORIGIN. Marks can optionally be projected into a
// fragment (pixel) interval with an affine map.
//
// Everything in this package is a pure function of its inputs. Callers in
// a render loop can reuse a mark slice across frames with AppendTicks;
// such a slice belongs to one caller at a time and must not be shared by
// concurrent calls without external synchronisation.
package axis

import (
	"fmt"
	"math"
)

// Interval is a closed range [Min, Max] on one axis.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Length returns Max - Min. It is negative for inverted intervals.
func (iv Interval) Length() float64 {
	return iv.Max - iv.Min
}

// Contains reports whether x lies in [Min, Max].
func (iv Interval) Contains(x float64) bool {
	return x >= iv.Min && x <= iv.Max
}

// Validate checks that iv is usable as a domain: finite bounds with
// Min strictly below Max.
func (iv Interval) Validate() error {
	if !isFinite(iv.Min) || !isFinite(iv.Max) {
		return fmt.Errorf("%w: non-finite bounds [%g, %g]", ErrInvalidInterval, iv.Min, iv.Max)
	}
	if iv.Min >= iv.Max {
		return fmt.Errorf("%w: min %g must be below max %g", ErrInvalidInterval, iv.Min, iv.Max)
	}
	return nil
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Min, iv.Max)
}

// MarkKind classifies a planned position.
type MarkKind uint8

const (
	MarkMinor MarkKind = iota
	MarkMajor
	MarkOrigin
)

func (k MarkKind) String() string {
	switch k {
	case MarkMinor:
		return "minor"
	case MarkMajor:
		return "major"
	case MarkOrigin:
		return "origin"
	default:
		return fmt.Sprintf("MarkKind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name so JSON output stays readable.
func (k MarkKind) MarshalText() ([]byte, error) {
	switch k {
	case MarkMinor, MarkMajor, MarkOrigin:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown mark kind %d", uint8(k))
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *MarkKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "minor":
		*k = MarkMinor
	case "major":
		*k = MarkMajor
	case "origin":
		*k = MarkOrigin
	default:
		return fmt.Errorf("unknown mark kind %q", b)
	}
	return nil
}

// IsMajor reports whether the mark sits on the major grid. The origin
// is a major mark too.
func (k MarkKind) IsMajor() bool {
	return k == MarkMajor || k == MarkOrigin
}

// Mark is one planned grid position. Fragment is only meaningful when
// Mapped is set.
type Mark struct {
	Kind     MarkKind `json:"kind"`
	Position float64  `json:"position"`
	Fragment float64  `json:"fragment,omitempty"`
	Mapped   bool     `json:"mapped,omitempty"`
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
