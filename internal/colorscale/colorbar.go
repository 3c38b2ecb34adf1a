package colorscale

import "fmt"

// DefaultMaxTicks bounds colourbar labels when a request does not set MaxTicks.
const DefaultMaxTicks = 12

// Request describes a colourbar for a data range.
type Request struct {
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
	Bins      int      `json:"bins"`
	Target    *float64 `json:"target,omitempty"`
	Mode      Mode     `json:"scale"`
	ColourMap string   `json:"colour_map"`
	MaxTicks  int      `json:"max_ticks,omitempty"`
}

// Colourbar is a renderer-ready discrete colour mapping.
//
// Colourscale, ZMin, ZMax and TickValues are in the transformed coordinate
// the renderer plots (log10 of the data for logarithmic scales). Boundaries
// and Ticks are data values.
type Colourbar struct {
	Min         float64   `json:"min"`
	Max         float64   `json:"max"`
	Mode        Mode      `json:"scale"`
	Target      *float64  `json:"target,omitempty"`
	ColourMap   string    `json:"colour_map"`
	Boundaries  []float64 `json:"boundaries"`
	Colours     []string  `json:"colours"`
	Colourscale []Stop    `json:"colourscale"`
	ZMin        float64   `json:"zmin"`
	ZMax        float64   `json:"zmax"`
	Ticks       []float64 `json:"ticks"`
	TickValues  []float64 `json:"tick_values"`
	TickLabels  []string  `json:"tick_labels"`
}

// Bins returns the number of colour bins.
func (c Colourbar) Bins() int {
	return len(c.Colours)
}

// Build computes boundaries, colours, the stepped colourscale and ticks for req.
func Build(req Request) (Colourbar, error) {
	if req.Bins < 1 {
		return Colourbar{}, fmt.Errorf("%w: bin count must be positive, got %d", ErrConfiguration, req.Bins)
	}
	tr, err := checkRange(req.Min, req.Max, req.Mode)
	if err != nil {
		return Colourbar{}, err
	}
	maxTicks := req.MaxTicks
	if maxTicks == 0 {
		maxTicks = DefaultMaxTicks
	}

	boundaries, err := UniformlySpacedWithTarget(req.Min, req.Max, req.Bins+1, req.Target, req.Mode)
	if err != nil {
		return Colourbar{}, err
	}
	colours, err := Colors(req.ColourMap, len(boundaries)-1)
	if err != nil {
		return Colourbar{}, err
	}

	transformed := make([]float64, len(boundaries))
	for i, b := range boundaries {
		transformed[i] = tr.Forward(b)
	}
	stops, err := Discrete(transformed, colours)
	if err != nil {
		return Colourbar{}, err
	}

	ticks, err := UseTicks(req.Min, req.Max, req.Target, req.Mode, req.Bins, maxTicks)
	if err != nil {
		return Colourbar{}, err
	}
	values := make([]float64, len(ticks))
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		values[i] = tr.Forward(t)
		labels[i] = FormatTick(t)
	}

	var target *float64
	if targetInRange(req.Target, req.Min, req.Max) {
		target = TargetAt(*req.Target)
	}

	return Colourbar{
		Min:         req.Min,
		Max:         req.Max,
		Mode:        req.Mode,
		Target:      target,
		ColourMap:   req.ColourMap,
		Boundaries:  boundaries,
		Colours:     colours,
		Colourscale: stops,
		ZMin:        transformed[0],
		ZMax:        transformed[len(transformed)-1],
		Ticks:       ticks,
		TickValues:  values,
		TickLabels:  labels,
	}, nil
}
