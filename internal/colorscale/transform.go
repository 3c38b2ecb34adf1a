package colorscale

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the coordinate in which bins are uniformly spaced.
type Mode string

const (
	Linear      Mode = "linear"
	Logarithmic Mode = "logarithmic"
)

// ParseMode accepts "linear", "log" and "logarithmic", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "log", "logarithmic":
		return Logarithmic, nil
	default:
		return "", fmt.Errorf("%w: unknown scale mode %q", ErrConfiguration, s)
	}
}

// Transformer is a forward/inverse function pair for a scale mode.
type Transformer struct {
	Forward func(float64) float64
	Inverse func(float64) float64
}

// Transform returns the forward and inverse functions for mode.
func Transform(mode Mode) (Transformer, error) {
	switch mode {
	case Linear:
		return Transformer{Forward: identity, Inverse: identity}, nil
	case Logarithmic:
		return Transformer{Forward: math.Log10, Inverse: pow10}, nil
	default:
		return Transformer{}, fmt.Errorf("%w: unknown scale mode %q", ErrConfiguration, mode)
	}
}

func identity(x float64) float64 { return x }

func pow10(x float64) float64 { return math.Pow(10, x) }
