// Package explorer holds the state of a design value map view and turns it
// into colourbars.
//
// State changes go through [Reduce], a pure function of the catalogue, the
// current state and one [Event]. The [Service] wraps the reducer with live
// data ranges from the pipeline and caches computed colourbars.
package explorer

import (
	"errors"
	"fmt"
	"math"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
)

// MaxBins caps the number of colour bins a view may request.
const MaxBins = catalog.MaxBins

// ErrInvalidEvent is returned for malformed or unknown events.
var ErrInvalidEvent = errors.New("invalid explorer event")

// State is the user-facing configuration of one map view.
type State struct {
	DesignValue  string          `json:"design_value"`
	Regime       catalog.Regime  `json:"regime"`
	WarmingLevel string          `json:"warming_level,omitempty"`
	ColourMap    string          `json:"colour_map"`
	Bins         int             `json:"bins"`
	Scale        colorscale.Mode `json:"scale"`
	Min          float64         `json:"min"`
	Max          float64         `json:"max"`
}

// rangeFunc returns the default data range of a dataset.
type rangeFunc func(dv *catalog.DesignValue, regime catalog.Regime, warmingLevel string) catalog.Range

func catalogRange(dv *catalog.DesignValue, regime catalog.Regime, _ string) catalog.Range {
	s, err := dv.Settings(regime)
	if err != nil {
		return catalog.Range{}
	}
	return s.Range
}

// Initial returns the default state of a design value in regime, using the
// catalogue range.
func Initial(cat *catalog.Catalog, id string, regime catalog.Regime) (State, error) {
	return initial(cat, id, regime, catalogRange)
}

func initial(cat *catalog.Catalog, id string, regime catalog.Regime, ranges rangeFunc) (State, error) {
	dv, err := cat.Lookup(id)
	if err != nil {
		return State{}, err
	}
	st := State{DesignValue: dv.ID, Regime: regime}
	if regime == catalog.Future {
		st.WarmingLevel = dv.WarmingLevels[0]
	}
	return resetDefaults(dv, st, ranges)
}

// resetDefaults restores the colour controls and range of st to the defaults
// of its design value and regime.
func resetDefaults(dv *catalog.DesignValue, st State, ranges rangeFunc) (State, error) {
	settings, err := dv.Settings(st.Regime)
	if err != nil {
		return State{}, err
	}
	r := ranges(dv, st.Regime, st.WarmingLevel)
	st.ColourMap = settings.ColourMap
	st.Bins = settings.Bins
	st.Scale = settings.Scale
	st.Min = r.Min
	st.Max = r.Max
	return st, nil
}

// Validate checks st against the catalogue.
func (st State) Validate(cat *catalog.Catalog) error {
	dv, err := cat.Lookup(st.DesignValue)
	if err != nil {
		return err
	}
	if _, err := catalog.ParseRegime(string(st.Regime)); err != nil {
		return err
	}
	if st.Regime == catalog.Future && !dv.HasWarmingLevel(st.WarmingLevel) {
		return fmt.Errorf("%w: design value %q has no warming level %q", colorscale.ErrConfiguration, dv.ID, st.WarmingLevel)
	}
	if st.Regime == catalog.Historical && st.WarmingLevel != "" {
		return fmt.Errorf("%w: warming level applies to the future regime only", colorscale.ErrConfiguration)
	}
	if !colorscale.HasColourMap(st.ColourMap) {
		return fmt.Errorf("%w: %q", colorscale.ErrUnknownColourMap, st.ColourMap)
	}
	if err := checkBins(st.Bins); err != nil {
		return err
	}
	if _, err := colorscale.ParseMode(string(st.Scale)); err != nil {
		return err
	}
	return checkRange(st.Min, st.Max)
}

func checkBins(n int) error {
	if n < 1 || n > MaxBins {
		return fmt.Errorf("%w: bins must be between 1 and %d, got %d", colorscale.ErrConfiguration, MaxBins, n)
	}
	return nil
}

func checkRange(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return fmt.Errorf("%w: range bounds must be finite", colorscale.ErrConfiguration)
	}
	if !(lo < hi) {
		return fmt.Errorf("%w: range min %g must be below max %g", colorscale.ErrConfiguration, lo, hi)
	}
	return nil
}
