package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
)

// ErrInvalidSummary is returned for range summaries that cannot be applied.
var ErrInvalidSummary = errors.New("invalid range summary")

// ParseRangeSummary deserializes and validates a RawEvent's value.
func ParseRangeSummary(raw RawEvent) (RangeSummary, error) {
	var s RangeSummary
	if err := json.Unmarshal(raw.Value, &s); err != nil {
		return RangeSummary{}, fmt.Errorf("parse range summary: %w", err)
	}
	if s.ComputedAt.IsZero() {
		s.ComputedAt = raw.Timestamp
	}
	return NormalizeRangeSummary(s)
}

// NormalizeRangeSummary trims identifiers, canonicalizes the regime and checks
// the range.
func NormalizeRangeSummary(s RangeSummary) (RangeSummary, error) {
	s.DesignValue = strings.TrimSpace(s.DesignValue)
	s.WarmingLevel = strings.TrimSpace(s.WarmingLevel)
	s.Source = strings.TrimSpace(s.Source)

	if s.DesignValue == "" {
		return RangeSummary{}, fmt.Errorf("%w: missing design_value", ErrInvalidSummary)
	}
	regime, err := catalog.ParseRegime(string(s.Regime))
	if err != nil {
		return RangeSummary{}, fmt.Errorf("%w: %w", ErrInvalidSummary, err)
	}
	s.Regime = regime

	switch {
	case regime == catalog.Future && s.WarmingLevel == "":
		return RangeSummary{}, fmt.Errorf("%w: future summary for %s needs a warming_level", ErrInvalidSummary, s.DesignValue)
	case regime == catalog.Historical && s.WarmingLevel != "":
		return RangeSummary{}, fmt.Errorf("%w: historical summary for %s has warming_level %q", ErrInvalidSummary, s.DesignValue, s.WarmingLevel)
	}

	if !isFinite(s.Min) || !isFinite(s.Max) {
		return RangeSummary{}, fmt.Errorf("%w: range of %s must be finite", ErrInvalidSummary, s.DesignValue)
	}
	if !(s.Min < s.Max) {
		return RangeSummary{}, fmt.Errorf("%w: range min %g must be below max %g", ErrInvalidSummary, s.Min, s.Max)
	}
	return s, nil
}

// DatasetKey identifies a dataset: "SL50/historical" or "SL50/future/2.0".
func DatasetKey(designValue string, regime catalog.Regime, warmingLevel string) string {
	key := designValue + "/" + string(regime)
	if warmingLevel != "" {
		key += "/" + warmingLevel
	}
	return key
}

// Key returns the dataset key of the summary.
func (s RangeSummary) Key() string {
	return DatasetKey(s.DesignValue, s.Regime, s.WarmingLevel)
}

// NewColourbarMessage stamps a colourbar for the dataset of s with the
// current time.
func NewColourbarMessage(s RangeSummary, cb colorscale.Colourbar) ColourbarMessage {
	return ColourbarMessage{
		Key:          s.Key(),
		DesignValue:  s.DesignValue,
		Regime:       s.Regime,
		WarmingLevel: s.WarmingLevel,
		Colourbar:    cb,
		PublishedAt:  clock.Now().UTC(),
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
