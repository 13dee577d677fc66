package axis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the default absolute tolerance for deciding that two grid
// positions coincide. Steps are normalised to {0.2, 0.5, 1}·10^k, which
// keeps accumulated rounding on unit-scale axes far below it.
const Epsilon = 1e-12

// ToleranceMode selects how Epsilon is applied.
type ToleranceMode uint8

const (
	// ToleranceAbsolute compares |a-b| against Epsilon regardless of the
	// magnitude of the operands.
	ToleranceAbsolute ToleranceMode = iota

	// ToleranceScaled scales the absolute bound by the minor step and
	// also accepts differences within Epsilon relative to the operands.
	// It stays correct for axes far from unit scale, such as [1e9, 1e9+10]
	// or [0, 1e-14].
	ToleranceScaled
)

func (m ToleranceMode) String() string {
	switch m {
	case ToleranceAbsolute:
		return "absolute"
	case ToleranceScaled:
		return "scaled"
	default:
		return fmt.Sprintf("ToleranceMode(%d)", uint8(m))
	}
}

// ParseToleranceMode is the inverse of ToleranceMode.String.
func ParseToleranceMode(s string) (ToleranceMode, error) {
	switch s {
	case "", "absolute":
		return ToleranceAbsolute, nil
	case "scaled":
		return ToleranceScaled, nil
	}
	return 0, fmt.Errorf("unknown tolerance mode %q (want absolute or scaled)", s)
}

// Tolerance is the equality policy of a Planner. The zero value is the
// absolute policy with Epsilon.
type Tolerance struct {
	Mode    ToleranceMode
	Epsilon float64
}

// comparer is a Tolerance bound to one domain and one step.
//
// Two bounds apply on top of the policy. Differences within the rounding
// noise of the domain's magnitude always compare equal, and differences
// above an eighth of the step never do, so neighbouring grid positions
// stay distinct however small the step is.
type comparer struct {
	abs, rel float64
	noise    float64
	limit    float64
}

// noiseULPs is how many units in the last place of the domain's magnitude
// count as rounding noise.
const noiseULPs = 16

func (t Tolerance) forDomain(domain Interval, step float64) comparer {
	eps := t.Epsilon
	if !(eps > 0) {
		eps = Epsilon
	}
	mag := math.Max(math.Abs(domain.Min), math.Abs(domain.Max))
	c := comparer{
		abs:   eps,
		noise: noiseULPs * (math.Nextafter(mag, math.Inf(1)) - mag),
		limit: step / 8,
	}
	if t.Mode == ToleranceScaled {
		c.abs, c.rel = eps*step, eps
	}
	return c
}

func (c comparer) equal(a, b float64) bool {
	d := math.Abs(a - b)
	switch {
	case d > c.limit:
		return false
	case d <= c.noise:
		return true
	case c.rel > 0:
		return scalar.EqualWithinAbsOrRel(a, b, c.abs, c.rel)
	}
	return scalar.EqualWithinAbs(a, b, c.abs)
}
