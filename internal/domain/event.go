package domain

import (
	"context"
	"time"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// RangeSummary is the data range of one design value raster.
type RangeSummary struct {
	DesignValue  string         `json:"design_value"`
	Regime       catalog.Regime `json:"regime"`
	WarmingLevel string         `json:"warming_level,omitempty"`
	Min          float64        `json:"min"`
	Max          float64        `json:"max"`
	Source       string         `json:"source,omitempty"`
	ComputedAt   time.Time      `json:"computed_at"`
}

// ColourbarMessage is the serialized form destined for the sink topic.
type ColourbarMessage struct {
	Key          string               `json:"key"`
	DesignValue  string               `json:"design_value"`
	Regime       catalog.Regime       `json:"regime"`
	WarmingLevel string               `json:"warming_level,omitempty"`
	Colourbar    colorscale.Colourbar `json:"colourbar"`
	PublishedAt  time.Time            `json:"published_at"`
}
