package explorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/couchcryptid/design-value-explorer/internal/cache"
	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"github.com/couchcryptid/design-value-explorer/internal/domain"
	"github.com/couchcryptid/design-value-explorer/internal/observability"
)

// logFloorRatio places the lower bound of a logarithmic scale whose minimum is
// not positive, relative to the maximum.
const logFloorRatio = 1e-3

// cacheKey identifies a computed colourbar. The target is not part of the
// key because it is fixed per design value and regime.
type cacheKey struct {
	designValue string
	regime      catalog.Regime
	colourMap   string
	bins        int
	scale       colorscale.Mode
	min, max    float64
}

// Service answers colourbar requests for map views.
type Service struct {
	cat     *catalog.Catalog
	cache   *cache.LRU[cacheKey, colorscale.Colourbar]
	logger  *slog.Logger
	metrics *observability.Metrics

	mu   sync.RWMutex
	live map[string]catalog.Range // by domain.DatasetKey
}

// NewService creates a Service over cat caching up to cacheSize colourbars.
func NewService(cat *catalog.Catalog, cacheSize int, logger *slog.Logger, metrics *observability.Metrics) *Service {
	metrics.CatalogDesignValues.Set(float64(len(cat.DesignValues)))
	return &Service{
		cat:     cat,
		cache:   cache.NewLRU[cacheKey, colorscale.Colourbar](cacheSize),
		logger:  logger,
		metrics: metrics,
		live:    make(map[string]catalog.Range),
	}
}

// Catalog returns the catalogue the service was built with.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}

// CheckReadiness reports whether the catalogue has design values to serve.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.cat == nil || len(s.cat.DesignValues) == 0 {
		return errors.New("catalog has no design values")
	}
	return nil
}

// Initial returns the default state of a design value in regime. The range
// is the live range of the dataset when one has been applied.
func (s *Service) Initial(id string, regime catalog.Regime) (State, error) {
	if _, err := catalog.ParseRegime(string(regime)); err != nil {
		return State{}, err
	}
	return initial(s.cat, id, regime, s.defaultRange)
}

// Reduce applies ev to st using live ranges as range defaults.
func (s *Service) Reduce(st State, ev Event) (State, error) {
	return reduce(s.cat, st, ev, s.defaultRange)
}

// ApplyRange records the live range of a dataset and drops cached colourbars
// of its design value and regime.
func (s *Service) ApplyRange(summary domain.RangeSummary) error {
	summary, err := domain.NormalizeRangeSummary(summary)
	if err != nil {
		return err
	}
	dv, err := s.cat.Lookup(summary.DesignValue)
	if err != nil {
		return err
	}
	if summary.Regime == catalog.Future && !dv.HasWarmingLevel(summary.WarmingLevel) {
		return fmt.Errorf("%w: design value %q has no warming level %q", domain.ErrInvalidSummary, dv.ID, summary.WarmingLevel)
	}

	s.mu.Lock()
	s.live[summary.Key()] = catalog.Range{Min: summary.Min, Max: summary.Max}
	s.mu.Unlock()

	dropped := s.cache.RemoveFunc(func(k cacheKey) bool {
		return k.designValue == summary.DesignValue && k.regime == summary.Regime
	})
	s.metrics.RangeUpdates.Inc()
	s.logger.Info("live range applied",
		"dataset", summary.Key(),
		"min", summary.Min,
		"max", summary.Max,
		"source", summary.Source,
		"invalidated", dropped,
	)
	return nil
}

// LiveRange returns the live range of a dataset, if one has been applied.
func (s *Service) LiveRange(designValue string, regime catalog.Regime, warmingLevel string) (catalog.Range, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.live[domain.DatasetKey(designValue, regime, warmingLevel)]
	return r, ok
}

func (s *Service) defaultRange(dv *catalog.DesignValue, regime catalog.Regime, warmingLevel string) catalog.Range {
	if r, ok := s.LiveRange(dv.ID, regime, warmingLevel); ok {
		return r
	}
	return catalogRange(dv, regime, warmingLevel)
}

// Colourbar computes the colourbar of st, serving repeated requests from the
// cache.
func (s *Service) Colourbar(ctx context.Context, st State) (colorscale.Colourbar, error) {
	cb, err := s.colourbar(ctx, st)
	if err != nil {
		s.metrics.ColourbarRequests.WithLabelValues("error").Inc()
		return colorscale.Colourbar{}, err
	}
	s.metrics.ColourbarRequests.WithLabelValues("success").Inc()
	return cb, nil
}

func (s *Service) colourbar(ctx context.Context, st State) (colorscale.Colourbar, error) {
	if err := ctx.Err(); err != nil {
		return colorscale.Colourbar{}, err
	}
	if err := st.Validate(s.cat); err != nil {
		return colorscale.Colourbar{}, err
	}
	dv, err := s.cat.Lookup(st.DesignValue)
	if err != nil {
		return colorscale.Colourbar{}, err
	}
	settings, err := dv.Settings(st.Regime)
	if err != nil {
		return colorscale.Colourbar{}, err
	}

	scale, _ := colorscale.ParseMode(string(st.Scale))
	lo := st.Min
	if scale == colorscale.Logarithmic && lo <= 0 {
		lo = s.logFloor(dv.ID, st.Regime, st.Max)
	}

	key := cacheKey{
		designValue: dv.ID,
		regime:      st.Regime,
		colourMap:   st.ColourMap,
		bins:        st.Bins,
		scale:       scale,
		min:         lo,
		max:         st.Max,
	}
	if cb, ok := s.cache.Get(key); ok {
		s.metrics.ColourbarCache.WithLabelValues("hit").Inc()
		return cb, nil
	}
	s.metrics.ColourbarCache.WithLabelValues("miss").Inc()

	start := time.Now()
	cb, err := colorscale.Build(colorscale.Request{
		Min:       lo,
		Max:       st.Max,
		Bins:      st.Bins,
		Target:    settings.Target,
		Mode:      scale,
		ColourMap: st.ColourMap,
		MaxTicks:  s.cat.MaxTicks,
	})
	if err != nil {
		return colorscale.Colourbar{}, fmt.Errorf("build colourbar for %s: %w", dv.ID, err)
	}
	s.metrics.ColourbarBuildDuration.Observe(time.Since(start).Seconds())

	s.cache.Put(key, cb)
	s.logger.Debug("colourbar built",
		"design_value", dv.ID,
		"regime", st.Regime,
		"bins", cb.Bins(),
		"scale", scale,
	)
	return cb, nil
}

// logFloor is the lower bound used for a logarithmic scale whose minimum is
// not positive: the smallest positive live minimum of the design value and
// regime below hi, else hi * logFloorRatio.
func (s *Service) logFloor(designValue string, regime catalog.Regime, hi float64) float64 {
	floor := math.Inf(1)

	s.mu.RLock()
	dv, _ := s.cat.Lookup(designValue)
	levels := []string{""}
	if regime == catalog.Future && dv != nil {
		levels = dv.WarmingLevels
	}
	for _, level := range levels {
		r, ok := s.live[domain.DatasetKey(designValue, regime, level)]
		if ok && r.Min > 0 && r.Min < hi && r.Min < floor {
			floor = r.Min
		}
	}
	s.mu.RUnlock()

	if math.IsInf(floor, 1) {
		return hi * logFloorRatio
	}
	return floor
}
