package axis

import (
	"fmt"
	"math"
)

// DensityRequest expresses how finely an axis should be subdivided. The
// two variants are Partitions and Fragments; both reduce to a positive
// subdivision unit for a given domain.
type DensityRequest interface {
	// SubdivisionUnit returns the number of subdivisions the domain
	// should be split into before step normalisation.
	SubdivisionUnit(domain Interval) (float64, error)

	densityRequest()
}

// Partitions asks for a fixed number of subdivisions of the domain.
type Partitions struct {
	Count int `json:"count"`
}

// SubdivisionUnit implements DensityRequest.
func (p Partitions) SubdivisionUnit(Interval) (float64, error) {
	if p.Count <= 0 {
		return 0, fmt.Errorf("%w: partition count must be positive, got %d", ErrInvalidInterval, p.Count)
	}
	return float64(p.Count), nil
}

func (Partitions) densityRequest() {}

// Fragments derives the density from the on-screen scale: how many
// fragments (pixels) one domain unit covers, and the smallest spacing in
// fragments that major marks may have.
type Fragments struct {
	FragmentsPerUnit    float64 `json:"fragments_per_unit"`
	MinFragmentsPerTick float64 `json:"min_fragments_per_tick"`
}

// SubdivisionUnit implements DensityRequest. The result is the number of
// minimally spaced marks that fit the domain.
func (f Fragments) SubdivisionUnit(domain Interval) (float64, error) {
	if !(f.FragmentsPerUnit > 0) || !(f.MinFragmentsPerTick > 0) {
		return 0, fmt.Errorf("%w: fragments per unit %g and min fragments per tick %g must be positive",
			ErrInvalidInterval, f.FragmentsPerUnit, f.MinFragmentsPerTick)
	}
	u := domain.Length() * f.FragmentsPerUnit / f.MinFragmentsPerTick
	if !isFinite(u) || u <= 0 {
		return 0, fmt.Errorf("%w: subdivision unit %g for domain %v", ErrInvalidInterval, u, domain)
	}
	return u, nil
}

func (Fragments) densityRequest() {}

// FragmentsFor builds a Fragments request for a domain drawn across the
// given fragment interval. Inverted fragment intervals (screen y axes)
// are fine; only the magnitude of the scale matters.
func FragmentsFor(domain, fragment Interval, minSpacing float64) Fragments {
	return Fragments{
		FragmentsPerUnit:    math.Abs(fragment.Length()) / domain.Length(),
		MinFragmentsPerTick: minSpacing,
	}
}
