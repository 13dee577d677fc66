package axis

import "math"

// AlignStart returns the first multiple of step (on the grid anchored at
// zero) that lies strictly above domain.Min, using the default tolerance.
// ok is false when that position is not below domain.Max, in which case
// the domain holds no marks of this step.
func AlignStart(domain Interval, step float64) (start float64, ok bool) {
	return alignStart(domain, step, Tolerance{}.forDomain(domain, step))
}

// alignStart snaps domain.Min onto the step grid and rounds up past it.
// math.Mod keeps the sign of the dividend, so for a negative Min the
// remainder is in (-step, 0] and subtracting it moves towards zero, which
// is upwards. For a non-negative Min the remainder is in [0, step) and the
// gap to the next multiple is added. A start that is tolerance-equal to
// Min is moved one step further: the lower bound is never a mark.
func alignStart(domain Interval, step float64, cmp comparer) (float64, bool) {
	r := math.Mod(domain.Min, step)
	var start float64
	if domain.Min < 0 {
		start = domain.Min - r
	} else {
		start = domain.Min + (step - r)
	}
	if cmp.equal(start, domain.Min) {
		start += step
	}
	return start, start < domain.Max
}
