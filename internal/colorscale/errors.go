package colorscale

import "errors"

var (
	// ErrConfiguration reports an unusable scale configuration: unknown mode,
	// non-positive bin count, degenerate range, or a logarithmic scale over
	// non-positive values.
	ErrConfiguration = errors.New("invalid colour scale configuration")

	// ErrShapeMismatch reports boundaries and colours of incompatible lengths.
	ErrShapeMismatch = errors.New("boundary/colour length mismatch")

	// ErrUnknownColourMap reports a colour map name with no definition.
	ErrUnknownColourMap = errors.New("unknown colour map")
)
