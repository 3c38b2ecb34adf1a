// Package catalog holds the typed configuration of the design values the
// explorer serves: their climate regimes, colour defaults and data ranges.
// A catalogue is loaded and validated once at startup.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	// ErrUnknownDesignValue is returned when a design value ID is not in the catalogue.
	ErrUnknownDesignValue = errors.New("unknown design value")

	// ErrUnknownRegime is returned for regimes other than historical and future.
	ErrUnknownRegime = errors.New("unknown climate regime")

	// ErrInvalidCatalog wraps every validation failure.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Regime is a climate regime: reconstructed (historical) or projected change (future).
type Regime string

const (
	Historical Regime = "historical"
	Future     Regime = "future"
)

// ParseRegime validates a regime name.
func ParseRegime(s string) (Regime, error) {
	switch r := Regime(strings.ToLower(strings.TrimSpace(s))); r {
	case Historical, Future:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRegime, s)
	}
}

// Range is a data range in the units of its design value.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// RegimeSettings are the colour defaults of a design value in one regime.
type RegimeSettings struct {
	ColourMap string          `yaml:"colour_map" json:"colour_map"`
	Bins      int             `yaml:"bins" json:"bins"`
	Scale     colorscale.Mode `yaml:"scale" json:"scale"`
	Target    *float64        `yaml:"target" json:"target,omitempty"`
	Range     Range           `yaml:"range" json:"range"`
}

// DesignValue describes one design value field.
type DesignValue struct {
	ID            string         `yaml:"id" json:"id"`
	Name          string         `yaml:"name" json:"name"`
	Units         string         `yaml:"units" json:"units"`
	Description   string         `yaml:"description" json:"description"`
	WarmingLevels []string       `yaml:"warming_levels" json:"warming_levels"`
	Historical    RegimeSettings `yaml:"historical" json:"historical"`
	Future        RegimeSettings `yaml:"future" json:"future"`
}

// Settings returns the colour defaults for regime.
func (dv *DesignValue) Settings(regime Regime) (RegimeSettings, error) {
	switch regime {
	case Historical:
		return dv.Historical, nil
	case Future:
		return dv.Future, nil
	default:
		return RegimeSettings{}, fmt.Errorf("%w: %q", ErrUnknownRegime, regime)
	}
}

// HasWarmingLevel reports whether level is one of the future warming levels.
func (dv *DesignValue) HasWarmingLevel(level string) bool {
	for _, l := range dv.WarmingLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Catalog is the validated set of design values.
type Catalog struct {
	MaxTicks     int           `yaml:"max_ticks" json:"max_ticks"`
	DesignValues []DesignValue `yaml:"design_values" json:"design_values"`

	index map[string]int
}

// LoadDefault parses the catalogue embedded in the binary.
func LoadDefault() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates a catalogue file. An empty path loads the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes YAML, rejecting unknown fields, and validates the result.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidCatalog, err)
	}
	if cat.MaxTicks == 0 {
		cat.MaxTicks = colorscale.DefaultMaxTicks
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks every design value and normalizes scale names. It also
// builds the lookup index.
func (c *Catalog) Validate() error {
	if len(c.DesignValues) == 0 {
		return fmt.Errorf("%w: no design values", ErrInvalidCatalog)
	}
	if c.MaxTicks < 3 {
		return fmt.Errorf("%w: max_ticks must be at least 3, got %d", ErrInvalidCatalog, c.MaxTicks)
	}

	index := make(map[string]int, len(c.DesignValues))
	for i := range c.DesignValues {
		dv := &c.DesignValues[i]
		if dv.ID == "" {
			return fmt.Errorf("%w: design value %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := index[dv.ID]; dup {
			return fmt.Errorf("%w: duplicate design value %q", ErrInvalidCatalog, dv.ID)
		}
		index[dv.ID] = i

		if len(dv.WarmingLevels) == 0 {
			return fmt.Errorf("%w: design value %q: future regime needs warming_levels", ErrInvalidCatalog, dv.ID)
		}
		if err := validateSettings(&dv.Historical); err != nil {
			return fmt.Errorf("%w: design value %q: historical: %w", ErrInvalidCatalog, dv.ID, err)
		}
		if err := validateSettings(&dv.Future); err != nil {
			return fmt.Errorf("%w: design value %q: future: %w", ErrInvalidCatalog, dv.ID, err)
		}
	}
	c.index = index
	return nil
}

// MaxBins caps the number of colour bins a dataset or view may use.
const MaxBins = 100

func validateSettings(s *RegimeSettings) error {
	mode, err := colorscale.ParseMode(string(s.Scale))
	if err != nil {
		return err
	}
	s.Scale = mode
	if s.Bins < 1 || s.Bins > MaxBins {
		return fmt.Errorf("bins must be between 1 and %d, got %d", MaxBins, s.Bins)
	}
	if !colorscale.HasColourMap(s.ColourMap) {
		return fmt.Errorf("unknown colour_map %q", s.ColourMap)
	}
	if !(s.Range.Min < s.Range.Max) {
		return fmt.Errorf("range min %g must be below max %g", s.Range.Min, s.Range.Max)
	}
	return nil
}

// Lookup returns the design value with the given ID.
func (c *Catalog) Lookup(id string) (*DesignValue, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDesignValue, id)
	}
	return &c.DesignValues[i], nil
}

// IDs returns design value IDs in catalogue order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.DesignValues))
	for i, dv := range c.DesignValues {
		ids[i] = dv.ID
	}
	return ids
}
