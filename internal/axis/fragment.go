package axis

import "fmt"

// Affine maps domain positions to fragment positions: f = M*x + K.
type Affine struct {
	M float64
	K float64
}

// NewAffine returns the map taking domain.Min to fragment.Min and
// domain.Max to fragment.Max. The fragment interval may be inverted, as
// it is for screen y axes, but neither interval may have zero width.
func NewAffine(domain, fragment Interval) (Affine, error) {
	if !isFinite(fragment.Min) || !isFinite(fragment.Max) {
		return Affine{}, fmt.Errorf("%w: non-finite fragment interval %v", ErrDegenerateDomain, fragment)
	}
	if fragment.Min == fragment.Max {
		return Affine{}, fmt.Errorf("%w: zero-width fragment interval %v", ErrDegenerateDomain, fragment)
	}
	if domain.Min == domain.Max {
		return Affine{}, fmt.Errorf("%w: zero-width domain %v", ErrDegenerateDomain, domain)
	}
	m := fragment.Length() / domain.Length()
	k := fragment.Min - m*domain.Min
	if !isFinite(m) || !isFinite(k) || m == 0 {
		return Affine{}, fmt.Errorf("%w: affine map %v -> %v has scale %g and offset %g",
			ErrComputationOverflow, domain, fragment, m, k)
	}
	return Affine{M: m, K: k}, nil
}

// Apply maps a domain position into fragment space.
func (a Affine) Apply(x float64) float64 {
	return a.M*x + a.K
}

// Invert maps a fragment position back into the domain.
func (a Affine) Invert(f float64) (float64, error) {
	if a.M == 0 {
		return 0, fmt.Errorf("%w: affine map has zero scale", ErrDegenerateDomain)
	}
	return (f - a.K) / a.M, nil
}

// MapMarks writes the fragment position of every mark in place.
func (a Affine) MapMarks(marks []Mark) {
	for i := range marks {
		marks[i].Fragment = a.Apply(marks[i].Position)
		marks[i].Mapped = true
	}
}
