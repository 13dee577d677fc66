package viewport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/axisgrid/internal/monitoring"
	"github.com/banshee-data/axisgrid/internal/timeutil"
)

// FrameStats describes one animation frame.
type FrameStats struct {
	Index   int
	Frame   Frame
	Elapsed time.Duration
	Err     error
}

// Summary aggregates a run.
type Summary struct {
	RunID    string
	Frames   int
	Failed   int
	MinMarks int
	MaxMarks int
	// Grown counts frames where a mark arena had to reallocate.
	Grown int
}

// Animator replays a zoom on a viewport, one recompute per frame.
type Animator struct {
	Viewport *Viewport
	Clock    timeutil.Clock
	Interval time.Duration
}

// Run applies factor to the viewport frames-1 times, after reporting the
// starting view as frame 0. A frame whose zoom fails keeps the previous
// view and is counted in Summary.Failed; the run continues. onFrame may
// be nil. The returned error is non-nil only when ctx ends the run early.
func (a *Animator) Run(ctx context.Context, frames int, factor float64, onFrame func(FrameStats)) (Summary, error) {
	clock := a.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	sum := Summary{RunID: uuid.New().String()}
	monitoring.Logf("viewport: run %s: %d frames, factor %g", sum.RunID, frames, factor)
	xCap, yCap := cap(a.Viewport.xMarks), cap(a.Viewport.yMarks)
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			monitoring.Logf("viewport: run %s cancelled after %d frames", sum.RunID, sum.Frames)
			return sum, ctx.Err()
		default:
		}

		start := clock.Now()
		var err error
		if i > 0 {
			if err = a.Viewport.Zoom(factor); err != nil {
				sum.Failed++
				monitoring.Logf("viewport: run %s frame %d: %v", sum.RunID, i, err)
			}
		}
		f := a.Viewport.Frame()
		elapsed := clock.Since(start)

		if c1, c2 := cap(f.XMarks), cap(f.YMarks); c1 != xCap || c2 != yCap {
			if i > 0 {
				sum.Grown++
			}
			xCap, yCap = c1, c2
		}
		n := len(f.XMarks) + len(f.YMarks)
		if sum.Frames == 0 || n < sum.MinMarks {
			sum.MinMarks = n
		}
		if n > sum.MaxMarks {
			sum.MaxMarks = n
		}
		sum.Frames++

		if onFrame != nil {
			onFrame(FrameStats{Index: i, Frame: f, Elapsed: elapsed, Err: err})
		}

		if wait := a.Interval - clock.Since(start); i < frames-1 && wait > 0 {
			clock.Sleep(wait)
		}
	}
	return sum, nil
}
