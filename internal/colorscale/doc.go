// Package colorscale computes discrete colour scales for gridded design-value
// rasters.
//
// # Bins and boundaries
//
// A colour scale is described by its bin boundaries: an ordered sequence of
// values where each adjacent pair delimits one colour bin. Boundaries are
// uniformly spaced in a transformed coordinate chosen by the scale [Mode]:
//
//	linear       value space (identity)
//	logarithmic  log10 space (inverse 10**x)
//
// # Targets
//
// Some fields have a value that must never fall inside a bin. Future-regime
// change factors are the usual case:
//
//	ratio fields       target 1  ("no change" is a boundary)
//	difference fields  target 0
//
// When a target lies within the requested range, [UniformlySpacedWithTarget]
// shifts the uniform grid so the target is one of the boundaries. The grid
// may then extend slightly past the range on either side, and may contain
// one extra point.
//
// # Renderer contract
//
// [Discrete] emits the stepped colourscale consumed by the map renderer: a
// list of [position, colour] pairs where each bin contributes two entries
// with the same colour, so the renderer never interpolates inside a bin.
//
// Everything in this package is pure. Invalid input is reported through the
// sentinel errors [ErrConfiguration], [ErrShapeMismatch] and
// [ErrUnknownColourMap]; callers validate and clamp data ranges upstream.
package colorscale
