package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var _ Clock = RealClock{}
var _ Clock = (*MockClock)(nil)

func TestRealClock(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	assert.False(t, now.Before(before))

	past := time.Now().Add(-time.Second)
	assert.GreaterOrEqual(t, clock.Since(past), time.Second)

	start := time.Now()
	clock.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := NewMockClock(start)
	assert.Equal(t, start, clock.Now())

	clock.Advance(time.Minute)
	assert.Equal(t, time.Minute, clock.Since(start))

	clock.Sleep(10 * time.Millisecond)
	clock.Sleep(0)
	clock.Sleep(-time.Second)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 0, -time.Second}, clock.Sleeps())
	assert.Equal(t, time.Minute+10*time.Millisecond, clock.Since(start), "only positive sleeps advance")
}

func TestMockClock_SleepsIsACopy(t *testing.T) {
	clock := NewMockClock(time.Time{})
	clock.Sleep(time.Second)
	got := clock.Sleeps()
	got[0] = 0
	assert.Equal(t, []time.Duration{time.Second}, clock.Sleeps())
}
