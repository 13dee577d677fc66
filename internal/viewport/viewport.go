// Package viewport keeps the marks of a two-axis view current while the
// visible window moves.
//
// A Viewport recomputes both axes synchronously whenever its domain or
// screen fragment changes, writing into mark arenas it owns. Slices
// returned by Frame alias those arenas and are only valid until the next
// change. A Viewport is not safe for concurrent use.
package viewport

import (
	"fmt"
	"math"

	"github.com/banshee-data/axisgrid/internal/axis"
)

// Frame is the set of marks for one state of the viewport.
type Frame struct {
	X, Y         axis.Interval
	XStep, YStep axis.Step
	XMarks       []axis.Mark
	YMarks       []axis.Mark
}

// Viewport is a pair of axes mapped onto a screen rectangle.
type Viewport struct {
	planner    axis.Planner
	minSpacing float64

	x, y         axis.Interval
	xFrag, yFrag axis.Interval

	xStep, yStep   axis.Step
	xMarks, yMarks []axis.Mark
}

// New returns a viewport showing x and y on the given screen fragments.
// Major marks are kept at least minSpacing fragment units apart.
func New(planner axis.Planner, x, y, xFrag, yFrag axis.Interval, minSpacing float64) (*Viewport, error) {
	if !(minSpacing > 0) || math.IsInf(minSpacing, 0) {
		return nil, fmt.Errorf("%w: min spacing %g", axis.ErrInvalidInterval, minSpacing)
	}
	v := &Viewport{planner: planner, minSpacing: minSpacing, x: x, y: y, xFrag: xFrag, yFrag: yFrag}
	if err := v.recompute(); err != nil {
		return nil, err
	}
	return v, nil
}

// Frame returns the current marks. The mark slices are overwritten by
// the next successful or failed change.
func (v *Viewport) Frame() Frame {
	return Frame{
		X: v.x, Y: v.y,
		XStep: v.xStep, YStep: v.yStep,
		XMarks: v.xMarks, YMarks: v.yMarks,
	}
}

// Domain returns the visible x and y intervals.
func (v *Viewport) Domain() (x, y axis.Interval) {
	return v.x, v.y
}

// SetDomain moves the visible window. On error the viewport keeps its
// previous state.
func (v *Viewport) SetDomain(x, y axis.Interval) error {
	return v.update(x, y, v.xFrag, v.yFrag)
}

// SetFragment resizes the screen rectangle. On error the viewport keeps
// its previous state.
func (v *Viewport) SetFragment(xFrag, yFrag axis.Interval) error {
	return v.update(v.x, v.y, xFrag, yFrag)
}

// Pan shifts the window by dx and dy domain units.
func (v *Viewport) Pan(dx, dy float64) error {
	return v.SetDomain(
		axis.Interval{Min: v.x.Min + dx, Max: v.x.Max + dx},
		axis.Interval{Min: v.y.Min + dy, Max: v.y.Max + dy},
	)
}

// Zoom scales both domains about their centres. A factor below one zooms
// in.
func (v *Viewport) Zoom(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: zoom factor %g", axis.ErrInvalidInterval, factor)
	}
	return v.SetDomain(scale(v.x, factor), scale(v.y, factor))
}

func scale(iv axis.Interval, factor float64) axis.Interval {
	c := iv.Min + iv.Length()/2
	h := iv.Length() / 2 * factor
	return axis.Interval{Min: c - h, Max: c + h}
}

func (v *Viewport) update(x, y, xFrag, yFrag axis.Interval) error {
	prevX, prevY, prevXFrag, prevYFrag := v.x, v.y, v.xFrag, v.yFrag
	v.x, v.y, v.xFrag, v.yFrag = x, y, xFrag, yFrag
	err := v.recompute()
	if err == nil {
		return nil
	}
	v.x, v.y, v.xFrag, v.yFrag = prevX, prevY, prevXFrag, prevYFrag
	if rerr := v.recompute(); rerr != nil {
		// The previous state planned successfully, so this only happens
		// if the planner itself changed underneath us.
		return fmt.Errorf("%w (restoring previous view: %v)", err, rerr)
	}
	return err
}

func (v *Viewport) recompute() error {
	var err error
	if v.xStep, v.xMarks, err = v.plan(v.xMarks[:0], v.x, v.xFrag); err != nil {
		return fmt.Errorf("x axis: %w", err)
	}
	if v.yStep, v.yMarks, err = v.plan(v.yMarks[:0], v.y, v.yFrag); err != nil {
		return fmt.Errorf("y axis: %w", err)
	}
	return nil
}

func (v *Viewport) plan(dst []axis.Mark, domain, frag axis.Interval) (axis.Step, []axis.Mark, error) {
	if err := domain.Validate(); err != nil {
		return axis.Step{}, dst, err
	}
	if _, err := axis.NewAffine(domain, frag); err != nil {
		return axis.Step{}, dst, err
	}
	step, err := v.planner.Plan(domain, axis.FragmentsFor(domain, frag, v.minSpacing))
	if err != nil {
		return axis.Step{}, dst, err
	}
	dst, err = v.planner.AppendMarks(dst, domain, step, &frag)
	return step, dst, err
}
