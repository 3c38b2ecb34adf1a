package colorscale

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseTicks_AllBoundariesFit(t *testing.T) {
	ticks, err := UseTicks(0, 10, nil, Linear, 10, 12)
	require.NoError(t, err)

	want := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if diff := cmp.Diff(want, ticks, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}

func TestUseTicks_EvenStride(t *testing.T) {
	ticks, err := UseTicks(0, 10, nil, Linear, 10, 6)
	require.NoError(t, err)

	want := []float64{0, 2, 4, 6, 8, 10}
	if diff := cmp.Diff(want, ticks, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}

func TestUseTicks_TargetOnStrideKept(t *testing.T) {
	ticks, err := UseTicks(0, 10, TargetAt(4), Linear, 10, 6)
	require.NoError(t, err)

	want := []float64{0, 2, 4, 6, 8, 10}
	if diff := cmp.Diff(want, ticks, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}

func TestUseTicks_StrideAnchoredOnTarget(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		target   float64
		bins     int
		maxTicks int
		want     []float64
	}{
		{"short range", 0, 10, 3, 10, 6, []float64{0, 3, 6, 10}},
		{"long range", 0, 20, 7, 20, 8, []float64{0, 4, 7, 10, 13, 16, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks, err := UseTicks(tt.min, tt.max, TargetAt(tt.target), Linear, tt.bins, tt.maxTicks)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, ticks, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("ticks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUseTicks_InteriorGapsEven(t *testing.T) {
	for _, target := range []*float64{nil, TargetAt(11)} {
		for maxTicks := 4; maxTicks <= 12; maxTicks++ {
			ticks, err := UseTicks(0, 30, target, Linear, 30, maxTicks)
			require.NoError(t, err)
			if target != nil {
				require.Contains(t, ticks, *target)
			}

			interior := ticks[1 : len(ticks)-1]
			for i := 2; i < len(interior); i++ {
				assert.InDelta(t, interior[1]-interior[0], interior[i]-interior[i-1], 1e-9,
					"max=%d: uneven interior ticks %v", maxTicks, ticks)
			}
		}
	}
}

func TestUseTicks_ExtendedBoundariesClippedToRange(t *testing.T) {
	// Boundaries run -1.5 .. 11; ticks stay within [0, 10].
	ticks, err := UseTicks(0, 10, TargetAt(1), Linear, 4, 10)
	require.NoError(t, err)

	want := []float64{0, 1, 3.5, 6, 8.5, 10}
	if diff := cmp.Diff(want, ticks, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}

func TestUseTicks_Properties(t *testing.T) {
	cases := []struct {
		min, max float64
		mode     Mode
		target   *float64
	}{
		{-4, 9, Linear, TargetAt(0)},
		{-4, 9, Linear, nil},
		{0.3, 2.2, Linear, TargetAt(1)},
		{0.3, 2.2, Logarithmic, TargetAt(1)},
		{1, 1e6, Logarithmic, TargetAt(1e3)},
		{2, 500, Logarithmic, nil},
		{-50, -10, Linear, TargetAt(0)},
	}

	for _, c := range cases {
		for bins := 1; bins <= 24; bins++ {
			for maxTicks := 3; maxTicks <= 14; maxTicks++ {
				name := fmt.Sprintf("%s/%g-%g/bins=%d/max=%d", c.mode, c.min, c.max, bins, maxTicks)
				ticks, err := UseTicks(c.min, c.max, c.target, c.mode, bins, maxTicks)
				require.NoError(t, err, name)

				assert.LessOrEqual(t, len(ticks), maxTicks, name)
				assert.Equal(t, c.min, ticks[0], name)
				assert.Equal(t, c.max, ticks[len(ticks)-1], name)
				if targetInRange(c.target, c.min, c.max) {
					assert.True(t, slices.Contains(ticks, *c.target), "%s: target missing from %v", name, ticks)
				}
				for i := 1; i < len(ticks); i++ {
					assert.Greater(t, ticks[i], ticks[i-1], name)
				}
			}
		}
	}
}

func TestUseTicks_Errors(t *testing.T) {
	_, err := UseTicks(0, 10, nil, Linear, 0, 5)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = UseTicks(0, 10, TargetAt(5), Linear, 10, 2)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = UseTicks(0, 10, nil, Linear, 10, 1)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = UseTicks(0, 10, nil, Logarithmic, 10, 5)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestUseTicks_TwoTicksWithoutTarget(t *testing.T) {
	ticks, err := UseTicks(0, 10, nil, Linear, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10}, ticks)
}
