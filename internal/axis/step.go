package axis

import (
	"fmt"
	"math"
)

// Step is a pair of grid spacings. Major is {0.2, 0.5, 1}·10^k and Minor
// divides it into four or five parts.
type Step struct {
	Major float64 `json:"major"`
	Minor float64 `json:"minor"`
}

// SelectStep picks the major and minor step for a domain split into
// subdivisionUnit parts.
//
// The raw step width/subdivisionUnit is normalised against the smallest
// power of ten not below it, and rounded up to 0.2, 0.5 or 1 of that
// power. Adjacent candidates differ by at most 2.5x, so the realised
// density stays close to the request.
func SelectStep(domain Interval, subdivisionUnit float64) (Step, error) {
	unit := domain.Length() / subdivisionUnit
	if !isFinite(unit) || unit <= 0 {
		return Step{}, fmt.Errorf("%w: step unit %g from domain %v and subdivision %g",
			ErrInvalidInterval, unit, domain, subdivisionUnit)
	}

	exp, err := decade(unit)
	if err != nil {
		return Step{}, err
	}
	pow10 := math.Pow10(exp)
	norm := unit / pow10

	// The 0.2 and 0.5 cases scale the previous decade by an integer so
	// that 0.2 comes out as the nearest double and not 0.20000000000000004.
	var s Step
	switch {
	case norm <= 0.2:
		s.Major = 2 * math.Pow10(exp-1)
		s.Minor = s.Major / 4
	case norm <= 0.5:
		s.Major = 5 * math.Pow10(exp-1)
		s.Minor = s.Major / 5
	default:
		s.Major = pow10
		s.Minor = s.Major / 5
	}
	if !isFinite(s.Major) || !(s.Minor > 0) {
		return Step{}, fmt.Errorf("%w: step %g/%g for unit %g", ErrComputationOverflow, s.Major, s.Minor, unit)
	}
	return s, nil
}

// decade returns the smallest exponent e with 10^e >= unit. log10 alone
// can land one decade off for exact powers of ten, so the estimate is
// corrected against math.Pow10, which is exact.
func decade(unit float64) (int, error) {
	l := math.Ceil(math.Log10(unit))
	if !isFinite(l) {
		return 0, fmt.Errorf("%w: log10(%g) = %g", ErrComputationOverflow, unit, l)
	}
	e := int(l)
	for e > -400 && math.Pow10(e-1) >= unit {
		e--
	}
	for e < 400 && math.Pow10(e) < unit {
		e++
	}
	p := math.Pow10(e)
	if !isFinite(p) || p == 0 {
		return 0, fmt.Errorf("%w: 10^%d is not representable", ErrComputationOverflow, e)
	}
	return e, nil
}
