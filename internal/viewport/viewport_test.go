package viewport

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/monitoring"
	"github.com/banshee-data/axisgrid/internal/timeutil"
)

var (
	screenX = axis.Interval{Min: 0, Max: 500}
	screenY = axis.Interval{Min: 400, Max: 0}
)

func newTestViewport(t *testing.T) *Viewport {
	t.Helper()
	v, err := New(axis.DefaultPlanner(),
		axis.Interval{Min: -2.5, Max: 2.5}, axis.Interval{Min: -1, Max: 1},
		screenX, screenY, 100)
	require.NoError(t, err)
	return v
}

func origin(marks []axis.Mark) (axis.Mark, bool) {
	for _, m := range marks {
		if m.Kind == axis.MarkOrigin {
			return m, true
		}
	}
	return axis.Mark{}, false
}

func TestNew(t *testing.T) {
	v := newTestViewport(t)
	f := v.Frame()

	// 100 fragments per unit and 100 between majors: major 1, minor 0.2.
	assert.Equal(t, axis.Step{Major: 1, Minor: 0.2}, f.XStep)
	assert.Len(t, f.XMarks, 25)
	o, ok := origin(f.XMarks)
	require.True(t, ok)
	assert.InDelta(t, 250.0, o.Fragment, 1e-9)

	// 200 fragments per unit: major 0.5, minor 0.1, screen y inverted.
	assert.Equal(t, axis.Step{Major: 0.5, Minor: 0.1}, f.YStep)
	assert.Len(t, f.YMarks, 20)
	o, ok = origin(f.YMarks)
	require.True(t, ok)
	assert.InDelta(t, 200.0, o.Fragment, 1e-9)
	last := f.YMarks[len(f.YMarks)-1]
	assert.InDelta(t, 0.0, last.Fragment, 1e-9, "y max maps to the top of the screen")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(axis.DefaultPlanner(), axis.Interval{Min: 1, Max: 1}, axis.Interval{Min: 0, Max: 1}, screenX, screenY, 100)
	assert.ErrorIs(t, err, axis.ErrInvalidInterval)

	_, err = New(axis.DefaultPlanner(), axis.Interval{Min: 0, Max: 1}, axis.Interval{Min: 0, Max: 1}, screenX, axis.Interval{Min: 3, Max: 3}, 100)
	assert.ErrorIs(t, err, axis.ErrDegenerateDomain)

	_, err = New(axis.DefaultPlanner(), axis.Interval{Min: 0, Max: 1}, axis.Interval{Min: 0, Max: 1}, screenX, screenY, 0)
	assert.ErrorIs(t, err, axis.ErrInvalidInterval)
}

func TestPan(t *testing.T) {
	v := newTestViewport(t)
	before := v.Frame().XMarks
	first := &before[0]

	require.NoError(t, v.Pan(1, 0))
	x, y := v.Domain()
	assert.Equal(t, axis.Interval{Min: -1.5, Max: 3.5}, x)
	assert.Equal(t, axis.Interval{Min: -1, Max: 1}, y)

	f := v.Frame()
	require.Len(t, f.XMarks, 25)
	assert.True(t, first == &f.XMarks[0], "pan should reuse the x arena")
	o, ok := origin(f.XMarks)
	require.True(t, ok)
	assert.InDelta(t, 150.0, o.Fragment, 1e-9)
}

func TestPan_AwayFromOrigin(t *testing.T) {
	v := newTestViewport(t)
	require.NoError(t, v.Pan(10, 10))
	f := v.Frame()
	_, ok := origin(f.XMarks)
	assert.False(t, ok)
	_, ok = origin(f.YMarks)
	assert.False(t, ok)
}

func TestZoom(t *testing.T) {
	v := newTestViewport(t)
	require.NoError(t, v.Zoom(0.5))
	x, y := v.Domain()
	assert.Equal(t, axis.Interval{Min: -1.25, Max: 1.25}, x)
	assert.Equal(t, axis.Interval{Min: -0.5, Max: 0.5}, y)

	// Twice the fragments per unit: major 0.5.
	f := v.Frame()
	assert.Equal(t, 0.5, f.XStep.Major)
	for _, m := range f.XMarks {
		assert.GreaterOrEqual(t, m.Fragment, -1e-9)
		assert.LessOrEqual(t, m.Fragment, 500+1e-9)
	}

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, v.Zoom(bad), axis.ErrInvalidInterval, "factor %v", bad)
	}
}

func TestSetDomain_ErrorKeepsPreviousState(t *testing.T) {
	v := newTestViewport(t)
	want := v.Frame()
	wantX := append([]axis.Mark(nil), want.XMarks...)

	err := v.SetDomain(axis.Interval{Min: 2, Max: 2}, axis.Interval{Min: -1, Max: 1})
	require.ErrorIs(t, err, axis.ErrInvalidInterval)
	assert.Contains(t, err.Error(), "x axis")

	got := v.Frame()
	assert.Equal(t, want.X, got.X)
	assert.Equal(t, wantX, got.XMarks)
	assert.Len(t, got.YMarks, len(want.YMarks))
}

func TestSetFragment(t *testing.T) {
	v := newTestViewport(t)
	require.NoError(t, v.SetFragment(axis.Interval{Min: 0, Max: 1000}, screenY))
	f := v.Frame()
	assert.Equal(t, axis.Step{Major: 0.5, Minor: 0.1}, f.XStep)
	o, ok := origin(f.XMarks)
	require.True(t, ok)
	assert.InDelta(t, 500.0, o.Fragment, 1e-9)

	err := v.SetFragment(screenX, axis.Interval{Min: 7, Max: 7})
	require.ErrorIs(t, err, axis.ErrDegenerateDomain)
	assert.Contains(t, err.Error(), "y axis")
	assert.Equal(t, axis.Step{Major: 0.5, Minor: 0.1}, v.Frame().XStep, "failed resize keeps previous fragment")
}

func TestAnimator_Run(t *testing.T) {
	v := newTestViewport(t)
	clock := timeutil.NewMockClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	a := &Animator{Viewport: v, Clock: clock, Interval: 16 * time.Millisecond}

	var seen []FrameStats
	sum, err := a.Run(context.Background(), 6, 0.8, func(fs FrameStats) {
		seen = append(seen, fs)
	})
	require.NoError(t, err)

	assert.Equal(t, 6, sum.Frames)
	assert.Zero(t, sum.Failed)
	_, err = uuid.Parse(sum.RunID)
	assert.NoError(t, err)
	require.Len(t, seen, 6)
	for i, fs := range seen {
		assert.Equal(t, i, fs.Index)
		assert.NoError(t, fs.Err)
	}
	assert.Equal(t, axis.Interval{Min: -2.5, Max: 2.5}, seen[0].Frame.X)

	x, _ := v.Domain()
	assert.InDelta(t, 2.5*math.Pow(0.8, 5), x.Max, 1e-12)

	// Density follows the zoom, so the mark count stays in a narrow band.
	assert.Greater(t, sum.MinMarks, 20)
	assert.LessOrEqual(t, sum.MaxMarks, 120)

	sleeps := clock.Sleeps()
	require.Len(t, sleeps, 5, "no sleep after the last frame")
	for _, d := range sleeps {
		assert.Equal(t, 16*time.Millisecond, d)
	}
}

func TestAnimator_FailedFramesContinue(t *testing.T) {
	original := monitoring.Logf
	defer func() { monitoring.Logf = original }()
	var logged []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})

	v := newTestViewport(t)
	a := &Animator{Viewport: v, Clock: timeutil.NewMockClock(time.Time{})}

	// Zooming out by 1e200 per frame overflows the domain on frame 2.
	sum, err := a.Run(context.Background(), 4, 1e200, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Frames)
	assert.Equal(t, 2, sum.Failed)
	frameErrors := 0
	for _, l := range logged {
		if strings.Contains(l, " frame ") {
			frameErrors++
		}
	}
	assert.Equal(t, 2, frameErrors)

	x, _ := v.Domain()
	assert.InEpsilon(t, 2.5e200, x.Max, 1e-12, "failed frames keep the last good view")
}

func TestAnimator_Cancelled(t *testing.T) {
	original := monitoring.Logf
	defer func() { monitoring.Logf = original }()
	monitoring.SetLogger(nil)

	v := newTestViewport(t)
	ctx, cancel := context.WithCancel(context.Background())

	a := &Animator{Viewport: v, Clock: timeutil.NewMockClock(time.Time{}), Interval: time.Millisecond}
	sum, err := a.Run(ctx, 100, 0.9, func(fs FrameStats) {
		if fs.Index == 2 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, sum.Frames)
}
