// Package metrics provides Prometheus metrics for the pulse analytics engine.
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
	enabled          bool
	registry         prometheus.Registerer

	// Pipeline metrics - one analysis run end to end
	runsTotal     prometheus.Counter
	runFailures   prometheus.Counter
	runDuration   prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	snapshotSize  prometheus.Gauge

	// Assessment metrics - what the last run produced
	personsAssessed  prometheus.Gauge
	projectsAssessed prometheus.Gauge
	highRiskPersons  prometheus.Gauge
	highRiskProjects prometheus.Gauge

	// Narrative service metrics
	narrativeRequests  prometheus.Counter
	narrativeFailures  prometheus.Counter
	narrativeFallbacks prometheus.Counter
	narrativeLatency   prometheus.Histogram

	// Report store metrics
	storeFetchLatency prometheus.Histogram
	storeRowsSkipped  prometheus.Counter

	// Worker pool metrics
	poolWorkers prometheus.Gauge
	poolTasks   prometheus.Counter

	// HTTP surface metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pulse",
		subsystem:        "insights",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

	m.runsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of completed analysis runs",
	})

	m.runFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_failures_total",
		Help:      "Total number of analysis runs that returned an error",
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_milliseconds",
		Help:      "End-to-end analysis run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_milliseconds",
			Help:      "Per-stage analysis duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)

	m.snapshotSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_reports",
		Help:      "Number of reports in the most recent analysis snapshot",
	})

	m.personsAssessed = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persons_assessed",
		Help:      "Number of person assessments produced by the most recent run",
	})

	m.projectsAssessed = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projects_assessed",
		Help:      "Number of project assessments produced by the most recent run",
	})

	m.highRiskPersons = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "high_risk_persons",
		Help:      "Number of persons at high risk in the most recent run",
	})

	m.highRiskProjects = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "high_risk_projects",
		Help:      "Number of projects at high risk in the most recent run",
	})

	m.narrativeRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "narrative_requests_total",
		Help:      "Total number of narrative service calls attempted",
	})

	m.narrativeFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "narrative_failures_total",
		Help:      "Total number of narrative service calls that failed",
	})

	m.narrativeFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "narrative_fallbacks_total",
		Help:      "Total number of runs that fell back to rule-derived recommendations",
	})

	m.narrativeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "narrative_latency_milliseconds",
		Help:      "Narrative service call latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeFetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_fetch_latency_milliseconds",
		Help:      "Report store fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeRowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_rows_skipped_total",
		Help:      "Total number of undecodable store records skipped",
	})

	m.poolWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_workers",
		Help:      "Number of workers in the assessment pool",
	})

	m.poolTasks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_tasks_total",
		Help:      "Total number of assessment tasks dispatched to the pool",
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
}

// RecordRun records a completed analysis run and its duration.
func RecordRun(durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.runsTotal.Inc()
	globalManager.runDuration.Observe(durationMs)
}

// RecordRunFailure increments the failed-run counter.
func RecordRunFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.runFailures.Inc()
}

// RecordStageDuration records a single stage's duration.
func RecordStageDuration(stage string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
}

// UpdateSnapshotSize sets the report count of the current snapshot.
func UpdateSnapshotSize(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.snapshotSize.Set(float64(count))
}

// UpdateAssessmentCounts sets the person/project assessment gauges.
func UpdateAssessmentCounts(persons, projects int) {
	if !globalManager.enabled {
		return
	}
	globalManager.personsAssessed.Set(float64(persons))
	globalManager.projectsAssessed.Set(float64(projects))
}

// UpdateHighRiskCounts sets the high-risk gauges.
func UpdateHighRiskCounts(persons, projects int) {
	if !globalManager.enabled {
		return
	}
	globalManager.highRiskPersons.Set(float64(persons))
	globalManager.highRiskProjects.Set(float64(projects))
}

// RecordNarrativeRequest increments the narrative call counter.
func RecordNarrativeRequest() {
	if !globalManager.enabled {
		return
	}
	globalManager.narrativeRequests.Inc()
}

// RecordNarrativeFailure increments the narrative failure counter.
func RecordNarrativeFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.narrativeFailures.Inc()
}

// RecordNarrativeFallback increments the fallback counter.
func RecordNarrativeFallback() {
	if !globalManager.enabled {
		return
	}
	globalManager.narrativeFallbacks.Inc()
}

// RecordNarrativeLatency records narrative call latency in milliseconds.
func RecordNarrativeLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.narrativeLatency.Observe(latencyMs)
}

// RecordStoreFetchLatency records report store fetch latency in milliseconds.
func RecordStoreFetchLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeFetchLatency.Observe(latencyMs)
}

// RecordStoreRowSkipped increments the skipped-record counter.
func RecordStoreRowSkipped() {
	if !globalManager.enabled {
		return
	}
	globalManager.storeRowsSkipped.Inc()
}

// UpdatePoolWorkers sets the assessment pool size.
func UpdatePoolWorkers(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.poolWorkers.Set(float64(count))
}

// RecordPoolTask increments the dispatched-task counter.
func RecordPoolTask() {
	if !globalManager.enabled {
		return
	}
	globalManager.poolTasks.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
