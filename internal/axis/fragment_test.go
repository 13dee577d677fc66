package axis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAffine(t *testing.T) {
	a, err := NewAffine(Interval{-2.5, 2.5}, Interval{0, 500})
	require.NoError(t, err)
	assert.Equal(t, 100.0, a.M)
	assert.Equal(t, 250.0, a.K)
	assert.Equal(t, 250.0, a.Apply(0))
	assert.Equal(t, 0.0, a.Apply(-2.5))
	assert.Equal(t, 500.0, a.Apply(2.5))
}

func TestNewAffine_Inverted(t *testing.T) {
	// Screen y grows downwards.
	a, err := NewAffine(Interval{-2.5, 2.5}, Interval{400, 0})
	require.NoError(t, err)
	assert.Equal(t, 400.0, a.Apply(-2.5))
	assert.Equal(t, 0.0, a.Apply(2.5))
	assert.Equal(t, 200.0, a.Apply(0))
}

func TestNewAffine_Errors(t *testing.T) {
	tests := []struct {
		name     string
		domain   Interval
		fragment Interval
		want     error
	}{
		{"zero-width fragment", Interval{0, 1}, Interval{7, 7}, ErrDegenerateDomain},
		{"zero-width domain", Interval{2, 2}, Interval{0, 100}, ErrDegenerateDomain},
		{"infinite fragment", Interval{0, 1}, Interval{0, math.Inf(1)}, ErrDegenerateDomain},
		{"scale overflow", Interval{0, 1e-300}, Interval{0, 1e300}, ErrComputationOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAffine(tt.domain, tt.fragment)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, Affine{}, a)
		})
	}
}

func TestAffine_RoundTrip(t *testing.T) {
	fragments := []Interval{{0, 1920}, {1080, 0}, {-1, 1}, {37.5, 38.25}}
	domains := []Interval{{-2.5, 2.5}, {0.001, 0.002}, {-1e4, 3e4}, {12, 13}}

	for _, d := range domains {
		for _, f := range fragments {
			a, err := NewAffine(d, f)
			require.NoError(t, err)

			marks, err := ComputeTicks(d, Partitions{Count: 10}, &f)
			require.NoError(t, err)
			require.NotEmpty(t, marks)

			for _, m := range marks {
				require.True(t, m.Mapped)
				assert.False(t, math.IsNaN(m.Fragment) || math.IsInf(m.Fragment, 0))
				back, err := a.Invert(m.Fragment)
				require.NoError(t, err)
				tol := Epsilon * math.Max(1, math.Abs(m.Position)) * 1e3
				assert.InDelta(t, m.Position, back, tol, "domain %v fragment %v", d, f)
			}
		}
	}
}

func TestAffine_InvertZero(t *testing.T) {
	_, err := Affine{}.Invert(3)
	assert.ErrorIs(t, err, ErrDegenerateDomain)
}
