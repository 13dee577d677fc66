package axis

import (
	"errors"
	"fmt"
)

// Errors returned by the planner. They are wrapped with detail, so test
// for them with errors.Is. None of them is worth retrying with the same
// inputs; callers should skip drawing the grid for that frame.
var (
	// ErrInvalidInterval reports a non-finite, degenerate or inverted
	// domain, or a density that does not reduce to a positive scalar.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrComputationOverflow reports intermediate values that left the
	// finite range of float64, or a plan with more marks than allowed.
	ErrComputationOverflow = errors.New("computation overflow")

	// ErrDegenerateDomain reports a fragment mapping requested over a
	// zero-width interval.
	ErrDegenerateDomain = errors.New("degenerate domain")
)

var errNilDensity = fmt.Errorf("%w: nil density request", ErrInvalidInterval)
