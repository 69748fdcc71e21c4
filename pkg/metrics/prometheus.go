// Package metrics provides Prometheus metrics for the curvecast streaming
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core pipeline metrics
	snapshotsBuilt prometheus.Counter
	mutationTicks  prometheus.Counter
	fitFailures    prometheus.Counter
	fitDuration    prometheus.Histogram

	// Streaming metrics
	activeStreams      prometheus.Gauge
	streamClientsTotal prometheus.Counter
	framesSent         prometheus.Counter
	streamErrors       *prometheus.CounterVec

	// History metrics
	historySize prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "curvecast",
		subsystem:        "stream",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.snapshotsBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_built_total",
		Help:      "Total number of curve snapshots assembled",
	})

	m.mutationTicks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mutation_ticks_total",
		Help:      "Total number of random-walk ticks applied to the raw curve",
	})

	m.fitFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fit_failures_total",
		Help:      "Total number of rejected polynomial fits (degenerate input)",
	})

	m.fitDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fit_duration_milliseconds",
		Help:      "Histogram of polynomial fit duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.activeStreams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_streams",
		Help:      "Number of currently connected stream consumers",
	})

	m.streamClientsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stream_clients_total",
		Help:      "Total number of stream consumers that ever connected",
	})

	m.framesSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_sent_total",
		Help:      "Total number of SSE frames written to consumers",
	})

	m.streamErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stream_errors_total",
			Help:      "Total number of stream failures by reason",
		},
		[]string{"reason"},
	)

	m.historySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_size",
		Help:      "Number of snapshots currently retained in the history store",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordSnapshotBuilt increments the snapshots built counter.
func RecordSnapshotBuilt() {
	globalManager.snapshotsBuilt.Inc()
}

// RecordMutationTick increments the mutation tick counter.
func RecordMutationTick() {
	globalManager.mutationTicks.Inc()
}

// RecordFitFailure increments the rejected-fit counter.
func RecordFitFailure() {
	globalManager.fitFailures.Inc()
}

// RecordFitDuration records one polynomial fit duration in milliseconds.
func RecordFitDuration(latencyMs float64) {
	globalManager.fitDuration.Observe(latencyMs)
}

// UpdateActiveStreams sets the number of connected stream consumers.
func UpdateActiveStreams(count int) {
	globalManager.activeStreams.Set(float64(count))
}

// RecordStreamClient increments the total stream consumers counter.
func RecordStreamClient() {
	globalManager.streamClientsTotal.Inc()
}

// RecordFrameSent increments the SSE frames counter.
func RecordFrameSent() {
	globalManager.framesSent.Inc()
}

// RecordStreamError records a stream failure with a reason label.
func RecordStreamError(reason string) {
	globalManager.streamErrors.WithLabelValues(reason).Inc()
}

// UpdateHistorySize sets the number of retained history snapshots.
func UpdateHistorySize(count int) {
	globalManager.historySize.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
