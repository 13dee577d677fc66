package axis

// DefaultMaxMarks bounds the marks a single plan may produce. A request
// for more is treated as an overflow rather than allocated.
const DefaultMaxMarks = 1 << 16

// Planner runs the tick pipeline. It is a small value type: copy it
// freely, and build one per configuration. The zero value uses the
// absolute Epsilon tolerance and DefaultMaxMarks.
type Planner struct {
	Tolerance Tolerance
	MaxMarks  int
}

// DefaultPlanner returns the planner used by the package-level functions.
func DefaultPlanner() Planner {
	return Planner{}
}

func (p Planner) maxMarks() int {
	if p.MaxMarks > 0 {
		return p.MaxMarks
	}
	return DefaultMaxMarks
}

// Plan validates the domain and density and selects the steps.
func (p Planner) Plan(domain Interval, density DensityRequest) (Step, error) {
	if err := domain.Validate(); err != nil {
		return Step{}, err
	}
	if density == nil {
		return Step{}, errNilDensity
	}
	u, err := density.SubdivisionUnit(domain)
	if err != nil {
		return Step{}, err
	}
	return SelectStep(domain, u)
}

// AppendMarks appends the marks of a precomputed step to dst, mapping
// them into fragment when it is non-nil. On error dst is returned
// unchanged.
func (p Planner) AppendMarks(dst []Mark, domain Interval, step Step, fragment *Interval) ([]Mark, error) {
	var mapper *Affine
	if fragment != nil {
		a, err := NewAffine(domain, *fragment)
		if err != nil {
			return dst, err
		}
		mapper = &a
	}
	n := len(dst)
	out, err := p.appendSequence(dst, domain, step)
	if err != nil {
		return dst[:n], err
	}
	if mapper != nil {
		mapper.MapMarks(out[n:])
	}
	return out, nil
}

// AppendTicks plans the marks of domain and appends them to dst.
//
// dst works as a grow-only arena: a render loop can pass marks[:0] every
// frame to avoid allocating. The slice is owned by the caller and must
// not be passed to concurrent calls.
func (p Planner) AppendTicks(dst []Mark, domain Interval, density DensityRequest, fragment *Interval) ([]Mark, error) {
	step, err := p.Plan(domain, density)
	if err != nil {
		return dst, err
	}
	return p.AppendMarks(dst, domain, step, fragment)
}

// ComputeTicks returns a freshly allocated mark sequence for domain. An
// empty result is not an error: it means no grid position falls inside
// the domain.
func (p Planner) ComputeTicks(domain Interval, density DensityRequest, fragment *Interval) ([]Mark, error) {
	return p.AppendTicks(nil, domain, density, fragment)
}

// ComputeTicks plans domain with the default planner.
func ComputeTicks(domain Interval, density DensityRequest, fragment *Interval) ([]Mark, error) {
	return DefaultPlanner().ComputeTicks(domain, density, fragment)
}

// AppendTicks plans domain with the default planner, appending to dst.
func AppendTicks(dst []Mark, domain Interval, density DensityRequest, fragment *Interval) ([]Mark, error) {
	return DefaultPlanner().AppendTicks(dst, domain, density, fragment)
}
