package colorscale

import (
	"math"
	"strconv"
)

// SigFigs rounds x to n significant decimal digits, halves to even. Zero, NaN
// and infinities are returned unchanged, as is a value whose rounding would
// leave the float64 range. n below 1 is treated as 1.
func SigFigs(x float64, n int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if n < 1 {
		n = 1
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'e', n-1, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// FormatTick renders a tick value as a three significant figure label.
func FormatTick(x float64) string {
	v := SigFigs(x, 3)
	a := math.Abs(v)
	if v != 0 && (a < 1e-3 || a >= 1e6) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
