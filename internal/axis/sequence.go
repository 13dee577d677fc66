package axis

import (
	"fmt"
	"math"
	"slices"
)

// minResolution is the smallest minor step, relative to the magnitude of
// the domain, that still leaves thousands of representable values between
// neighbouring marks.
const minResolution = 0x1p-40

// appendSequence walks the minor grid of step over domain and appends one
// mark per minor position to dst.
//
// Majors are found by index: they sit on every ratio-th minor position
// counted from the major grid's phase, so rounding in the two walks can
// never hide one. A major mark takes the major grid's position, which is
// within half a minor step of the minor walk, and the origin is written
// as an exact zero.
func (p Planner) appendSequence(dst []Mark, domain Interval, step Step) ([]Mark, error) {
	if mag := math.Max(math.Abs(domain.Min), math.Abs(domain.Max)); step.Minor < mag*minResolution {
		return dst, fmt.Errorf("%w: minor step %g is below float resolution at %g", ErrComputationOverflow, step.Minor, mag)
	}
	cmp := p.Tolerance.forDomain(domain, step.Minor)

	minorStart, ok := alignStart(domain, step.Minor, cmp)
	if !ok {
		return dst, nil
	}
	// A major start at or past Max is harmless: no index reaches it.
	majorStart, _ := alignStart(domain, step.Major, cmp)

	n := math.Floor((domain.Max-minorStart)/step.Minor) + 1
	if !isFinite(n) || n < 0 {
		return dst, fmt.Errorf("%w: mark count %g for domain %v", ErrComputationOverflow, n, domain)
	}
	// The quotient can land just under an integer, e.g. 1.9/0.1, which
	// would drop a mark sitting on Max.
	if cmp.equal(minorStart+n*step.Minor, domain.Max) {
		n++
	}
	if limit := p.maxMarks(); n > float64(limit) {
		return dst, fmt.Errorf("%w: %g marks exceed the limit of %d", ErrComputationOverflow, n, limit)
	}
	count := int(n)
	dst = slices.Grow(dst, count)

	ratio := max(int(math.Round(step.Major/step.Minor)), 1)
	phase := int(math.Round((majorStart - minorStart) / step.Minor))
	// The lower bound is never a mark, so only Min < 0 <= Max holds the
	// origin, and then it is the major at originK.
	originK := math.MinInt
	if domain.Min < 0 && domain.Max >= 0 {
		originK = int(math.Round(-majorStart / step.Major))
	}
	for i := 0; i < count; i++ {
		pos := minorStart + float64(i)*step.Minor
		kind := MarkMinor
		if d := i - phase; d%ratio == 0 {
			k := d / ratio
			if majorPos := majorStart + float64(k)*step.Major; math.Abs(majorPos-pos) <= step.Minor/2 {
				kind, pos = MarkMajor, majorPos
				if k == originK {
					kind, pos = MarkOrigin, 0
				}
			}
		}
		if pos > domain.Max {
			pos = domain.Max
		}
		dst = append(dst, Mark{Kind: kind, Position: pos})
	}
	return dst, nil
}
