package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"github.com/couchcryptid/design-value-explorer/internal/domain"
	"github.com/couchcryptid/design-value-explorer/internal/explorer"
)

// ColourbarService is the part of explorer.Service the transformer drives.
type ColourbarService interface {
	ApplyRange(summary domain.RangeSummary) error
	Initial(id string, regime catalog.Regime) (explorer.State, error)
	Reduce(st explorer.State, ev explorer.Event) (explorer.State, error)
	Colourbar(ctx context.Context, st explorer.State) (colorscale.Colourbar, error)
}

// ColourbarTransformer implements Transformer: it applies each range summary
// to the service and renders the default colourbar of its dataset.
type ColourbarTransformer struct {
	svc    ColourbarService
	logger *slog.Logger
}

// NewTransformer creates a ColourbarTransformer backed by svc.
func NewTransformer(svc ColourbarService, logger *slog.Logger) *ColourbarTransformer {
	return &ColourbarTransformer{svc: svc, logger: logger}
}

func (t *ColourbarTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.ColourbarMessage, error) {
	summary, err := domain.ParseRangeSummary(raw)
	if err != nil {
		return domain.ColourbarMessage{}, err
	}
	if err := t.svc.ApplyRange(summary); err != nil {
		return domain.ColourbarMessage{}, fmt.Errorf("apply range %s: %w", summary.Key(), err)
	}

	st, err := t.svc.Initial(summary.DesignValue, summary.Regime)
	if err != nil {
		return domain.ColourbarMessage{}, err
	}
	if summary.WarmingLevel != "" {
		st, err = t.svc.Reduce(st, explorer.SelectWarmingLevel{Level: summary.WarmingLevel})
		if err != nil {
			return domain.ColourbarMessage{}, err
		}
		// Initial resolved the range for the first warming level.
		st, err = t.svc.Reduce(st, explorer.ResetRange{})
		if err != nil {
			return domain.ColourbarMessage{}, err
		}
	}

	cb, err := t.svc.Colourbar(ctx, st)
	if err != nil {
		return domain.ColourbarMessage{}, fmt.Errorf("colourbar %s: %w", summary.Key(), err)
	}

	t.logger.Debug("colourbar precomputed", "dataset", summary.Key(), "bins", cb.Bins())
	return domain.NewColourbarMessage(summary, cb), nil
}
