package colorscale

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
)

// spacingTolerance is the fraction of one step within which a grid point is
// treated as landing on a range endpoint.
const spacingTolerance = 1e-9

// TargetAt returns a pointer to v, for use as an optional target.
func TargetAt(v float64) *float64 {
	return &v
}

// UniformlySpacedWithTarget returns values uniformly spaced in the
// transformed coordinate of mode that cover [min, max].
//
// Without a target, or with a target outside [min, max], the result has
// exactly numValues points running from min to max.
//
// With a target in range, the nominal step (forward(max)-forward(min))/(numValues-1)
// is kept and the grid is shifted so that target is one of the points. The
// number of steps on each side of the target is rounded up, so the first
// point is <= min, the last point is >= max, and the result has numValues
// or numValues+1 points.
func UniformlySpacedWithTarget(min, max float64, numValues int, target *float64, mode Mode) ([]float64, error) {
	tr, err := checkRange(min, max, mode)
	if err != nil {
		return nil, err
	}
	if numValues < 2 {
		return nil, fmt.Errorf("%w: need at least 2 values, got %d", ErrConfiguration, numValues)
	}

	tmin, tmax := tr.Forward(min), tr.Forward(max)
	if !targetInRange(target, min, max) {
		values := vec.Map(tr.Inverse, vec.Linspace(tmin, tmax, numValues))
		values[0], values[numValues-1] = min, max
		return values, nil
	}

	t := *target
	tt := tr.Forward(t)
	step := (tmax - tmin) / float64(numValues-1)
	below := ceilSteps((tt - tmin) / step)
	above := ceilSteps((tmax - tt) / step)

	values := make([]float64, 0, below+above+1)
	for i := -below; i <= above; i++ {
		if i == 0 {
			values = append(values, t)
			continue
		}
		x := tt + float64(i)*step
		switch {
		case math.Abs(x-tmin) <= spacingTolerance*step:
			values = append(values, min)
		case math.Abs(x-tmax) <= spacingTolerance*step:
			values = append(values, max)
		default:
			values = append(values, tr.Inverse(x))
		}
	}
	return values, nil
}

// ceilSteps rounds a step count up, ignoring floating-point excess below
// spacingTolerance. A positive count never rounds to zero: the target itself
// cannot be snapped onto a range endpoint.
func ceilSteps(x float64) int {
	n := int(math.Ceil(x - spacingTolerance))
	if n < 1 && x > 0 {
		return 1
	}
	return max(n, 0)
}

func checkRange(min, max float64, mode Mode) (Transformer, error) {
	tr, err := Transform(mode)
	if err != nil {
		return Transformer{}, err
	}
	if !isFinite(min) || !isFinite(max) {
		return Transformer{}, fmt.Errorf("%w: range [%g, %g] is not finite", ErrConfiguration, min, max)
	}
	if min >= max {
		return Transformer{}, fmt.Errorf("%w: degenerate range [%g, %g]", ErrConfiguration, min, max)
	}
	if mode == Logarithmic && min <= 0 {
		return Transformer{}, fmt.Errorf("%w: logarithmic scale requires a positive minimum, got %g", ErrConfiguration, min)
	}
	if span := tr.Forward(max) - tr.Forward(min); !isFinite(span) {
		return Transformer{}, fmt.Errorf("%w: range [%g, %g] spans more than a float64 can hold", ErrConfiguration, min, max)
	}
	return tr, nil
}

func targetInRange(target *float64, min, max float64) bool {
	return target != nil && !math.IsNaN(*target) && *target >= min && *target <= max
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
