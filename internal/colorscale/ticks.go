package colorscale

import (
	"fmt"
	"slices"
)

// UseTicks selects at most maxTicks tick values for a colourbar of numBins
// bins over [min, max]. The result always contains min, max, and target when
// target lies in range. The remaining ticks are bin boundaries inside the
// range taken every s-th boundary counted from the target, or from min when
// there is none, with the smallest stride s that fits.
func UseTicks(min, max float64, target *float64, mode Mode, numBins, maxTicks int) ([]float64, error) {
	if numBins < 1 {
		return nil, fmt.Errorf("%w: bin count must be positive, got %d", ErrConfiguration, numBins)
	}
	boundaries, err := UniformlySpacedWithTarget(min, max, numBins+1, target, mode)
	if err != nil {
		return nil, err
	}

	hasTarget := targetInRange(target, min, max) && *target > min && *target < max
	anchors := 2
	if hasTarget {
		anchors++
	}
	if maxTicks < anchors {
		return nil, fmt.Errorf("%w: max tick count %d cannot hold %d required ticks", ErrConfiguration, maxTicks, anchors)
	}

	candidates := make([]float64, 0, len(boundaries)+2)
	candidates = append(candidates, min)
	for _, b := range boundaries {
		if b > min && b < max {
			candidates = append(candidates, b)
		}
	}
	candidates = append(candidates, max)

	if len(candidates) <= maxTicks {
		return candidates, nil
	}

	anchor := 0
	if hasTarget {
		if ti := slices.Index(candidates, *target); ti > 0 {
			anchor = ti
		}
	}
	picked := anchoredIndices(len(candidates), anchor, maxTicks)

	ticks := make([]float64, len(picked))
	for i, idx := range picked {
		ticks[i] = candidates[idx]
	}
	return ticks, nil
}

// anchoredIndices picks at most k of n indices: 0, n-1, and every s-th index
// through anchor, using the smallest stride s that fits. Interior picks closer
// than half a stride to either end are dropped, except anchor itself. It
// requires 0 <= anchor < n-1, and k >= 3 when anchor is interior.
func anchoredIndices(n, anchor, k int) []int {
	for s := 1; ; s++ {
		idx := []int{0}
		for i := anchor % s; i < n-1; i += s {
			if i == 0 {
				continue
			}
			if i != anchor && 2*min(i, n-1-i) < s {
				continue
			}
			idx = append(idx, i)
		}
		idx = append(idx, n-1)
		if len(idx) <= k {
			return idx
		}
	}
}
