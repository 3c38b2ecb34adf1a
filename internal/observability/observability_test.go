package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/design-value-explorer/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefaultLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNewLogger_LevelFromConfig(t *testing.T) {
	tests := []struct {
		level, format string
		enabled       slog.Level
		disabled      slog.Level
	}{
		{"debug", "text", slog.LevelDebug, slog.LevelDebug - 1},
		{"warn", "json", slog.LevelWarn, slog.LevelInfo},
		{"error", "TEXT", slog.LevelError, slog.LevelWarn},
		{"bogus", "", slog.LevelInfo, slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			restoreDefaultLogger(t)
			logger := NewLogger(&config.Config{LogLevel: tt.level, LogFormat: tt.format})

			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tt.enabled))
			assert.False(t, logger.Enabled(ctx, tt.disabled))
		})
	}
}

func TestNewLogger_InstallsDefault(t *testing.T) {
	restoreDefaultLogger(t)
	logger := NewLogger(&config.Config{LogLevel: "info", LogFormat: "json"})
	assert.Same(t, logger, slog.Default())
}

func TestNewMetricsForTesting_Usable(t *testing.T) {
	m := NewMetricsForTesting()

	m.ColourbarRequests.WithLabelValues("success").Inc()
	m.ColourbarCache.WithLabelValues("hit").Add(2)
	m.CatalogDesignValues.Set(10)

	assert.InDelta(t, 1, value(t, m.ColourbarRequests.WithLabelValues("success")), 0)
	assert.InDelta(t, 2, value(t, m.ColourbarCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 10, value(t, m.CatalogDesignValues), 0)
}

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}
