package explorer

import (
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"github.com/couchcryptid/design-value-explorer/internal/domain"
	"github.com/couchcryptid/design-value-explorer/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	return NewService(loadCatalog(t), 16, slog.Default(), metrics), metrics
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestService_Colourbar_Historical(t *testing.T) {
	svc, _ := newTestService(t)
	st, err := svc.Initial("SL50", catalog.Historical)
	require.NoError(t, err)

	cb, err := svc.Colourbar(context.Background(), st)
	require.NoError(t, err)

	assert.Equal(t, colorscale.Logarithmic, cb.Mode)
	assert.Equal(t, 10, cb.Bins())
	assert.Len(t, cb.Boundaries, 11)
	assert.InDelta(t, 0.2, cb.Boundaries[0], 0)
	assert.InDelta(t, 12.5, cb.Boundaries[10], 0)
	assert.InDelta(t, math.Log10(0.2), cb.ZMin, 1e-12)
	assert.InDelta(t, math.Log10(12.5), cb.ZMax, 1e-12)
	assert.Nil(t, cb.Target)
	assert.LessOrEqual(t, len(cb.Ticks), 12)
}

func TestService_Colourbar_FutureTarget(t *testing.T) {
	svc, _ := newTestService(t)
	st, err := svc.Initial("SL50", catalog.Future)
	require.NoError(t, err)

	cb, err := svc.Colourbar(context.Background(), st)
	require.NoError(t, err)

	require.NotNil(t, cb.Target)
	assert.InDelta(t, 1.0, *cb.Target, 0)
	assert.Contains(t, cb.Boundaries, 1.0)
	assert.Contains(t, cb.Ticks, 1.0)
	assert.Equal(t, "BrBG", cb.ColourMap)
}

func TestService_Colourbar_CachesResults(t *testing.T) {
	svc, metrics := newTestService(t)
	st, err := svc.Initial("WP50", catalog.Historical)
	require.NoError(t, err)

	first, err := svc.Colourbar(context.Background(), st)
	require.NoError(t, err)
	second, err := svc.Colourbar(context.Background(), st)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.InDelta(t, 1, counterValue(t, metrics.ColourbarCache.WithLabelValues("miss")), 0)
	assert.InDelta(t, 1, counterValue(t, metrics.ColourbarCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 2, counterValue(t, metrics.ColourbarRequests.WithLabelValues("success")), 0)
	assert.Equal(t, 1, svc.cache.Len())
}

func TestService_Colourbar_LogFloor(t *testing.T) {
	svc, _ := newTestService(t)
	st, err := svc.Initial("RL50", catalog.Historical)
	require.NoError(t, err)
	st, err = svc.Reduce(st, SetScale{Scale: colorscale.Logarithmic})
	require.NoError(t, err)

	t.Run("no live range", func(t *testing.T) {
		cb, err := svc.Colourbar(context.Background(), st)
		require.NoError(t, err)
		assert.InDelta(t, 1.2e-3, cb.Min, 1e-15)
		assert.InDelta(t, 1.2, cb.Max, 0)
		assert.InDelta(t, 1.2e-3, cb.Boundaries[0], 1e-15)
	})

	t.Run("smallest positive live minimum", func(t *testing.T) {
		require.NoError(t, svc.ApplyRange(domain.RangeSummary{
			DesignValue: "RL50", Regime: catalog.Historical, Min: 0.05, Max: 1.1,
		}))
		cb, err := svc.Colourbar(context.Background(), st)
		require.NoError(t, err)
		assert.InDelta(t, 0.05, cb.Min, 0)
	})

	t.Run("non-positive maximum", func(t *testing.T) {
		neg, err := svc.Reduce(st, SetRange{Min: -2, Max: -1})
		require.NoError(t, err)
		_, err = svc.Colourbar(context.Background(), neg)
		require.ErrorIs(t, err, colorscale.ErrConfiguration)
	})
}

func TestService_ApplyRange(t *testing.T) {
	svc, metrics := newTestService(t)
	ctx := context.Background()

	hist, err := svc.Initial("HDD", catalog.Historical)
	require.NoError(t, err)
	fut, err := svc.Initial("HDD", catalog.Future)
	require.NoError(t, err)
	_, err = svc.Colourbar(ctx, hist)
	require.NoError(t, err)
	_, err = svc.Colourbar(ctx, fut)
	require.NoError(t, err)
	require.Equal(t, 2, svc.cache.Len())

	err = svc.ApplyRange(domain.RangeSummary{
		DesignValue: "HDD",
		Regime:      "historical",
		Min:         1500,
		Max:         11000,
		ComputedAt:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.cache.Len(), "only the historical colourbar is invalidated")
	assert.InDelta(t, 1, counterValue(t, metrics.RangeUpdates), 0)

	r, ok := svc.LiveRange("HDD", catalog.Historical, "")
	require.True(t, ok)
	assert.Equal(t, catalog.Range{Min: 1500, Max: 11000}, r)

	st, err := svc.Initial("HDD", catalog.Historical)
	require.NoError(t, err)
	assert.InDelta(t, 1500, st.Min, 0)
	assert.InDelta(t, 11000, st.Max, 0)

	st, err = svc.Reduce(st, SetRange{Min: 0, Max: 5})
	require.NoError(t, err)
	st, err = svc.Reduce(st, ResetRange{})
	require.NoError(t, err)
	assert.InDelta(t, 1500, st.Min, 0, "reset restores the live range")

	pure, err := Initial(svc.Catalog(), "HDD", catalog.Historical)
	require.NoError(t, err)
	assert.InDelta(t, 0, pure.Min, 0, "the pure reducer uses catalogue ranges")
}

func TestService_ApplyRange_Rejects(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.ApplyRange(domain.RangeSummary{DesignValue: "XYZ", Regime: catalog.Historical, Min: 0, Max: 1})
	require.ErrorIs(t, err, catalog.ErrUnknownDesignValue)

	err = svc.ApplyRange(domain.RangeSummary{DesignValue: "SL50", Regime: catalog.Future, WarmingLevel: "4.0", Min: 0, Max: 1})
	require.ErrorIs(t, err, domain.ErrInvalidSummary)

	err = svc.ApplyRange(domain.RangeSummary{DesignValue: "SL50", Regime: catalog.Historical, Min: 1, Max: 1})
	require.ErrorIs(t, err, domain.ErrInvalidSummary)
}

func TestService_Colourbar_Errors(t *testing.T) {
	svc, metrics := newTestService(t)
	st, err := svc.Initial("MI", catalog.Historical)
	require.NoError(t, err)

	bad := st
	bad.DesignValue = "XYZ"
	_, err = svc.Colourbar(context.Background(), bad)
	require.ErrorIs(t, err, catalog.ErrUnknownDesignValue)

	bad = st
	bad.Bins = 0
	_, err = svc.Colourbar(context.Background(), bad)
	require.ErrorIs(t, err, colorscale.ErrConfiguration)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Colourbar(ctx, st)
	require.ErrorIs(t, err, context.Canceled)

	assert.InDelta(t, 3, counterValue(t, metrics.ColourbarRequests.WithLabelValues("error")), 0)
}

func TestService_CheckReadiness(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.CheckReadiness(context.Background()))

	empty := NewService(&catalog.Catalog{}, 1, slog.Default(), observability.NewMetricsForTesting())
	require.Error(t, empty.CheckReadiness(context.Background()))
}
