package explorer

import (
	"fmt"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
)

// Reduce applies ev to st and returns the new state. Selecting a design value
// or regime resets the colour controls and range to the catalogue defaults.
// On error the previous state is returned unchanged.
func Reduce(cat *catalog.Catalog, st State, ev Event) (State, error) {
	return reduce(cat, st, ev, catalogRange)
}

func reduce(cat *catalog.Catalog, st State, ev Event, ranges rangeFunc) (State, error) {
	next, err := apply(cat, st, ev, ranges)
	if err != nil {
		return st, err
	}
	return next, nil
}

func apply(cat *catalog.Catalog, st State, ev Event, ranges rangeFunc) (State, error) {
	switch e := ev.(type) {
	case SelectDesignValue:
		dv, err := cat.Lookup(e.ID)
		if err != nil {
			return State{}, err
		}
		regime := st.Regime
		if _, err := catalog.ParseRegime(string(regime)); err != nil {
			regime = catalog.Historical
		}
		next := State{DesignValue: dv.ID, Regime: regime}
		if regime == catalog.Future {
			next.WarmingLevel = dv.WarmingLevels[0]
			if dv.HasWarmingLevel(st.WarmingLevel) {
				next.WarmingLevel = st.WarmingLevel
			}
		}
		return resetDefaults(dv, next, ranges)

	case SelectRegime:
		regime, err := catalog.ParseRegime(string(e.Regime))
		if err != nil {
			return State{}, err
		}
		dv, err := cat.Lookup(st.DesignValue)
		if err != nil {
			return State{}, err
		}
		next := State{DesignValue: dv.ID, Regime: regime}
		if regime == catalog.Future {
			next.WarmingLevel = dv.WarmingLevels[0]
		}
		return resetDefaults(dv, next, ranges)

	case SelectWarmingLevel:
		dv, err := cat.Lookup(st.DesignValue)
		if err != nil {
			return State{}, err
		}
		if st.Regime != catalog.Future {
			return State{}, fmt.Errorf("%w: warming level applies to the future regime only", colorscale.ErrConfiguration)
		}
		if !dv.HasWarmingLevel(e.Level) {
			return State{}, fmt.Errorf("%w: design value %q has no warming level %q", colorscale.ErrConfiguration, dv.ID, e.Level)
		}
		st.WarmingLevel = e.Level
		return st, nil

	case SetColourMap:
		if !colorscale.HasColourMap(e.Name) {
			return State{}, fmt.Errorf("%w: %q", colorscale.ErrUnknownColourMap, e.Name)
		}
		st.ColourMap = e.Name
		return st, nil

	case SetBins:
		if err := checkBins(e.Bins); err != nil {
			return State{}, err
		}
		st.Bins = e.Bins
		return st, nil

	case SetScale:
		mode, err := colorscale.ParseMode(string(e.Scale))
		if err != nil {
			return State{}, err
		}
		st.Scale = mode
		return st, nil

	case SetRange:
		if err := checkRange(e.Min, e.Max); err != nil {
			return State{}, err
		}
		st.Min, st.Max = e.Min, e.Max
		return st, nil

	case ResetRange:
		dv, err := cat.Lookup(st.DesignValue)
		if err != nil {
			return State{}, err
		}
		r := ranges(dv, st.Regime, st.WarmingLevel)
		st.Min, st.Max = r.Min, r.Max
		return st, nil

	case ApplyPreferences:
		if colorscale.HasColourMap(e.ColourMap) {
			st.ColourMap = e.ColourMap
		}
		if checkBins(e.Bins) == nil {
			st.Bins = e.Bins
		}
		if mode, err := colorscale.ParseMode(string(e.Scale)); err == nil {
			st.Scale = mode
		}
		return st, nil

	default:
		return State{}, fmt.Errorf("%w: unsupported event %T", ErrInvalidEvent, ev)
	}
}
