package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bulletin_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Extraction metrics.
	PagesWithoutStructure prometheus.Counter
	FieldsExtracted       *prometheus.CounterVec // labels: field, outcome={found,missing}
	SignalLayouts         *prometheus.CounterVec // labels: layout={columnar,stacked,none}
	GazetteerCache        *prometheus.CounterVec // labels: result={hit,miss}
}

func newMetrics() *Metrics {
	return &Metrics{
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
			Help:      "Total documents that could not be decoded or extracted.",
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
		PagesWithoutStructure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_without_structure_total",
			Help:      "Pages with no detected table rows.",
		}),
		FieldsExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fields_extracted_total",
			Help:      "Header-anchored field extractions by field and outcome.",
		}, []string{"field", "outcome"}),
		SignalLayouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signal_layout_total",
			Help:      "Wind signal tables by the layout that produced them.",
		}, []string{"layout"}),
		GazetteerCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gazetteer_cache_total",
			Help:      "Place classification cache lookups by result.",
		}, []string{"result"}),
	}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.PagesWithoutStructure,
		m.FieldsExtracted,
		m.SignalLayouts,
		m.GazetteerCache,
	)

	return m
}

// NewUnregisteredMetrics creates Metrics that no registry exports. One-shot
// commands use it to keep the extractor's counters without serving them.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

// ObserveCache records a gazetteer cache lookup. It matches the callback
// taken by gazetteer.NewCachedClassifier.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.GazetteerCache.WithLabelValues(result).Inc()
}

// ObserveField records whether a header-anchored field was found.
func (m *Metrics) ObserveField(field string, found bool) {
	outcome := "missing"
	if found {
		outcome = "found"
	}
	m.FieldsExtracted.WithLabelValues(field, outcome).Inc()
}
