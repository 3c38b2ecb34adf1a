package colorscale

import (
	"encoding/json"
	"fmt"

	"github.com/aclements/go-moremath/scale"
)

// Stop is one control point of a renderer colourscale.
type Stop struct {
	Position float64
	Colour   string
}

// MarshalJSON encodes the stop as the renderer-native pair [position, colour].
func (s Stop) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.Position, s.Colour})
}

// UnmarshalJSON decodes a [position, colour] pair.
func (s *Stop) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode colourscale stop: %w", err)
	}
	if err := json.Unmarshal(pair[0], &s.Position); err != nil {
		return fmt.Errorf("decode colourscale stop position: %w", err)
	}
	if err := json.Unmarshal(pair[1], &s.Colour); err != nil {
		return fmt.Errorf("decode colourscale stop colour: %w", err)
	}
	return nil
}

// Discrete builds a stepped colourscale: each bin k contributes
// (norm[k], colours[k]) and (norm[k+1], colours[k]), where norm rescales
// boundaries onto [0, 1].
func Discrete(boundaries []float64, colours []string) ([]Stop, error) {
	if len(colours) == 0 || len(boundaries) != len(colours)+1 {
		return nil, fmt.Errorf("%w: %d boundaries for %d colours", ErrShapeMismatch, len(boundaries), len(colours))
	}
	for i := 1; i < len(boundaries); i++ {
		if !(boundaries[i] > boundaries[i-1]) {
			return nil, fmt.Errorf("%w: boundaries not strictly increasing at index %d", ErrConfiguration, i)
		}
	}

	if span := boundaries[len(boundaries)-1] - boundaries[0]; !isFinite(span) {
		return nil, fmt.Errorf("%w: boundary span is not finite", ErrConfiguration)
	}

	norm := scale.Linear{Min: boundaries[0], Max: boundaries[len(boundaries)-1]}
	stops := make([]Stop, 0, 2*len(colours))
	for k, c := range colours {
		stops = append(stops,
			Stop{Position: norm.Map(boundaries[k]), Colour: c},
			Stop{Position: norm.Map(boundaries[k+1]), Colour: c},
		)
	}
	return stops, nil
}
