// Package metrics provides Prometheus metrics for the simreveal service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector registered by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Reveal engine
	revealDecisions *prometheus.CounterVec
	revealFailClose *prometheus.CounterVec

	// Snapshot repository
	snapshotSwaps    *prometheus.CounterVec
	snapshotLastUnix *prometheus.GaugeVec

	// Update pipeline
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueRejected    *prometheus.CounterVec
	applyLatency     prometheus.Histogram
	applyErrors      prometheus.Counter
	pollerFetches    *prometheus.CounterVec
	pollerLastChange prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // service-wide registry

var globalManager = NewManager(WithPrometheusRegistry(customRegistry)) //nolint:gochecknoglobals // singleton metrics manager

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "simreveal",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.revealDecisions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reveal_decisions_total",
		Help:      "Reveal evaluations by league, reason and outcome",
	}, []string{"league", "reason", "revealed"})

	m.revealFailClose = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reveal_fail_closed_total",
		Help:      "Reveal evaluations that failed closed on a precondition violation",
	}, []string{"league", "reason"})

	m.snapshotSwaps = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_swaps_total",
		Help:      "Wholesale snapshot replacements by league and kind",
	}, []string{"league", "kind"})

	m.snapshotLastUnix = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_swap_unix",
		Help:      "Unix time of the last snapshot replacement by league and kind",
	}, []string{"league", "kind"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_queue_size",
		Help:      "Pending snapshot updates",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_queue_capacity",
		Help:      "Maximum pending snapshot updates",
	})

	m.queueRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_queue_rejected_total",
		Help:      "Snapshot updates rejected at enqueue",
	}, []string{"reason"})

	m.applyLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_apply_latency_milliseconds",
		Help:      "Time to apply one snapshot update to the store",
		Buckets:   m.histogramBuckets,
	})

	m.applyErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_apply_errors_total",
		Help:      "Snapshot updates the store refused",
	})

	m.pollerFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poller_fetches_total",
		Help:      "External feed fetches by league and result",
	}, []string{"league", "result"})

	m.pollerLastChange = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poller_last_change_unix",
		Help:      "Unix time the poller last observed a changed payload",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP responses with status >= 400 by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordRevealDecision counts one reveal evaluation.
func (m *Manager) RecordRevealDecision(league, reason string, revealed, failClosed bool) {
	r := "false"
	if revealed {
		r = "true"
	}
	m.revealDecisions.WithLabelValues(league, reason, r).Inc()
	if failClosed {
		m.revealFailClose.WithLabelValues(league, reason).Inc()
	}
}

// RecordSnapshotSwap counts a snapshot replacement and stamps its time.
func (m *Manager) RecordSnapshotSwap(league, kind string, unix int64) {
	m.snapshotSwaps.WithLabelValues(league, kind).Inc()
	m.snapshotLastUnix.WithLabelValues(league, kind).Set(float64(unix))
}

// Package-level helpers forward to the global manager.

// RecordRevealDecision counts one reveal evaluation.
func RecordRevealDecision(league, reason string, revealed, failClosed bool) {
	globalManager.RecordRevealDecision(league, reason, revealed, failClosed)
}

// RecordSnapshotSwap counts a snapshot replacement.
func RecordSnapshotSwap(league, kind string, unix int64) {
	globalManager.RecordSnapshotSwap(league, kind, unix)
}

// UpdateQueueSize sets the number of pending updates.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// RecordQueueRejected counts an update rejected at enqueue.
func RecordQueueRejected(reason string) { globalManager.queueRejected.WithLabelValues(reason).Inc() }

// RecordApplyLatency observes the time to apply one update.
func RecordApplyLatency(ms float64) { globalManager.applyLatency.Observe(ms) }

// RecordApplyError counts an update the store refused.
func RecordApplyError() { globalManager.applyErrors.Inc() }

// RecordPollerFetch counts one external feed fetch.
func RecordPollerFetch(league, result string) {
	globalManager.pollerFetches.WithLabelValues(league, result).Inc()
}

// UpdatePollerLastChange stamps the last observed payload change.
func UpdatePollerLastChange(unix int64) { globalManager.pollerLastChange.Set(float64(unix)) }

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
