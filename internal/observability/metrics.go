package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dve"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// colourbar service and its precompute pipeline.
type Metrics struct {
	// Colourbar service metrics.
	ColourbarRequests      *prometheus.CounterVec // labels: outcome={success,error}
	ColourbarCache         *prometheus.CounterVec // labels: result={hit,miss}
	ColourbarBuildDuration prometheus.Histogram
	CatalogDesignValues    prometheus.Gauge
	RangeUpdates           prometheus.Counter

	// Pipeline metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ColourbarRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "colourbar_requests_total",
			Help:      "Colourbar requests by outcome.",
		}, []string{"outcome"}),
		ColourbarCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "colourbar_cache_total",
			Help:      "Colourbar cache lookups by result.",
		}, []string{"result"}),
		ColourbarBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "colourbar_build_duration_seconds",
			Help:      "Time spent computing a colourbar on a cache miss.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		CatalogDesignValues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_design_values",
			Help:      "Number of design values in the loaded catalogue.",
		}),
		RangeUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "range_updates_total",
			Help:      "Live data ranges applied from range summaries.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total transformation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.ColourbarRequests,
		m.ColourbarCache,
		m.ColourbarBuildDuration,
		m.CatalogDesignValues,
		m.RangeUpdates,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ColourbarRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "colourbar_requests_total"}, []string{"outcome"}),
		ColourbarCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "colourbar_cache_total"}, []string{"result"}),
		ColourbarBuildDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "colourbar_build_duration_seconds"}),
		CatalogDesignValues:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "catalog_design_values"}),
		RangeUpdates:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "range_updates_total"}),
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_processing_duration_seconds"}),
	}
}
