package explorer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
)

// Event types as they appear in the JSON envelope.
const (
	TypeSelectDesignValue  = "select_design_value"
	TypeSelectRegime       = "select_regime"
	TypeSelectWarmingLevel = "select_warming_level"
	TypeSetColourMap       = "set_colour_map"
	TypeSetBins            = "set_bins"
	TypeSetScale           = "set_scale"
	TypeSetRange           = "set_range"
	TypeResetRange         = "reset_range"
	TypeApplyPreferences   = "apply_preferences"
)

// Event is a single user interaction with a map view.
type Event interface {
	Type() string
}

// SelectDesignValue switches the view to another design value.
type SelectDesignValue struct{ ID string }

// SelectRegime switches between historical and future data.
type SelectRegime struct{ Regime catalog.Regime }

// SelectWarmingLevel picks a future warming level.
type SelectWarmingLevel struct{ Level string }

// SetColourMap picks a named colour map.
type SetColourMap struct{ Name string }

// SetBins sets the number of colour bins.
type SetBins struct{ Bins int }

// SetScale switches between linear and logarithmic colour scales.
type SetScale struct{ Scale colorscale.Mode }

// SetRange overrides the data range of the colourbar.
type SetRange struct{ Min, Max float64 }

// ResetRange restores the default data range.
type ResetRange struct{}

// ApplyPreferences restores colour preferences saved by the client. Zero
// fields are left unchanged and fields that do not validate are ignored.
type ApplyPreferences struct {
	ColourMap string
	Bins      int
	Scale     colorscale.Mode
}

func (SelectDesignValue) Type() string  { return TypeSelectDesignValue }
func (SelectRegime) Type() string       { return TypeSelectRegime }
func (SelectWarmingLevel) Type() string { return TypeSelectWarmingLevel }
func (SetColourMap) Type() string       { return TypeSetColourMap }
func (SetBins) Type() string            { return TypeSetBins }
func (SetScale) Type() string           { return TypeSetScale }
func (SetRange) Type() string           { return TypeSetRange }
func (ResetRange) Type() string         { return TypeResetRange }
func (ApplyPreferences) Type() string   { return TypeApplyPreferences }

// envelope is the wire form of every event.
type envelope struct {
	Type         string   `json:"type"`
	DesignValue  string   `json:"design_value,omitempty"`
	Regime       string   `json:"regime,omitempty"`
	WarmingLevel string   `json:"warming_level,omitempty"`
	ColourMap    string   `json:"colour_map,omitempty"`
	Bins         *int     `json:"bins,omitempty"`
	Scale        string   `json:"scale,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
}

// DecodeEvent parses a JSON event such as {"type": "set_bins", "bins": 10}.
func DecodeEvent(data []byte) (Event, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	switch env.Type {
	case TypeSelectDesignValue:
		if env.DesignValue == "" {
			return nil, missingField(env.Type, "design_value")
		}
		return SelectDesignValue{ID: env.DesignValue}, nil
	case TypeSelectRegime:
		if env.Regime == "" {
			return nil, missingField(env.Type, "regime")
		}
		return SelectRegime{Regime: catalog.Regime(env.Regime)}, nil
	case TypeSelectWarmingLevel:
		if env.WarmingLevel == "" {
			return nil, missingField(env.Type, "warming_level")
		}
		return SelectWarmingLevel{Level: env.WarmingLevel}, nil
	case TypeSetColourMap:
		if env.ColourMap == "" {
			return nil, missingField(env.Type, "colour_map")
		}
		return SetColourMap{Name: env.ColourMap}, nil
	case TypeSetBins:
		if env.Bins == nil {
			return nil, missingField(env.Type, "bins")
		}
		return SetBins{Bins: *env.Bins}, nil
	case TypeSetScale:
		if env.Scale == "" {
			return nil, missingField(env.Type, "scale")
		}
		return SetScale{Scale: colorscale.Mode(env.Scale)}, nil
	case TypeSetRange:
		if env.Min == nil || env.Max == nil {
			return nil, missingField(env.Type, "min and max")
		}
		return SetRange{Min: *env.Min, Max: *env.Max}, nil
	case TypeResetRange:
		return ResetRange{}, nil
	case TypeApplyPreferences:
		prefs := ApplyPreferences{ColourMap: env.ColourMap, Scale: colorscale.Mode(env.Scale)}
		if env.Bins != nil {
			prefs.Bins = *env.Bins
		}
		return prefs, nil
	case "":
		return nil, missingField("event", "type")
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, env.Type)
	}
}

// EncodeEvent is the inverse of DecodeEvent.
func EncodeEvent(ev Event) ([]byte, error) {
	env := envelope{Type: ev.Type()}
	switch e := ev.(type) {
	case SelectDesignValue:
		env.DesignValue = e.ID
	case SelectRegime:
		env.Regime = string(e.Regime)
	case SelectWarmingLevel:
		env.WarmingLevel = e.Level
	case SetColourMap:
		env.ColourMap = e.Name
	case SetBins:
		env.Bins = &e.Bins
	case SetScale:
		env.Scale = string(e.Scale)
	case SetRange:
		env.Min, env.Max = &e.Min, &e.Max
	case ResetRange:
	case ApplyPreferences:
		env.ColourMap = e.ColourMap
		env.Scale = string(e.Scale)
		if e.Bins != 0 {
			env.Bins = &e.Bins
		}
	default:
		return nil, fmt.Errorf("%w: unsupported event %T", ErrInvalidEvent, ev)
	}
	return json.Marshal(env)
}

func missingField(eventType, field string) error {
	return fmt.Errorf("%w: %s requires %s", ErrInvalidEvent, eventType, field)
}
