// Package metrics provides Prometheus metrics for the Mergington activities service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Signup business metrics
	signupsAccepted     *prometheus.CounterVec
	signupsRejected     *prometheus.CounterVec
	activityCount       prometheus.Gauge
	activityOccupancy   *prometheus.GaugeVec
	activityUtilization *prometheus.GaugeVec

	// Signup event pipeline
	queueSize       prometheus.Gauge
	queueCapacity   prometheus.Gauge
	eventsDropped   prometheus.Counter
	eventsPublished prometheus.Counter
	publishErrors   prometheus.Counter
	publishLatency  prometheus.Histogram
	workerCount     prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record/Update helpers

// Custom registry to keep default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mergington",
		subsystem:        "activities",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: m.histogramBuckets}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.signupsAccepted = auto.NewCounterVec(
		m.counterOpts("signups_total", "Total number of accepted signups by activity"),
		[]string{"activity"},
	)
	m.signupsRejected = auto.NewCounterVec(
		m.counterOpts("signups_rejected_total", "Total number of rejected signups by reason"),
		[]string{"reason"},
	)
	m.activityCount = auto.NewGauge(m.gaugeOpts("catalog_size", "Number of activities in the catalog"))
	m.activityOccupancy = auto.NewGaugeVec(
		m.gaugeOpts("participants", "Current number of participants per activity"),
		[]string{"activity"},
	)
	m.activityUtilization = auto.NewGaugeVec(
		m.gaugeOpts("utilization_ratio", "Participants divided by max_participants per activity"),
		[]string{"activity"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("event_queue_size", "Current number of queued signup events"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("event_queue_capacity", "Capacity of the signup event queue"))
	m.eventsDropped = auto.NewCounter(m.counterOpts("events_dropped_total", "Signup events dropped because the queue was full or closed"))
	m.eventsPublished = auto.NewCounter(m.counterOpts("events_published_total", "Signup events handed to the publisher"))
	m.publishErrors = auto.NewCounter(m.counterOpts("event_publish_errors_total", "Signup events the publisher failed to deliver"))
	m.publishLatency = auto.NewHistogram(m.histogramOpts("event_publish_latency_milliseconds", "Latency of signup event publishing in milliseconds"))
	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Number of signup event workers"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "HTTP errors by endpoint, method and error type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorsByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Allocated heap memory in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Current number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds", "Average GC pause time in milliseconds"))
}

// Signup metrics.

// RecordSignup counts an accepted signup for activity.
func RecordSignup(activity string) {
	globalManager.signupsAccepted.WithLabelValues(activity).Inc()
}

// RecordSignupRejected counts a rejected signup. reason is one of
// not_found, duplicate, full.
func RecordSignupRejected(reason string) {
	globalManager.signupsRejected.WithLabelValues(reason).Inc()
}

func UpdateActivityCount(count int) {
	globalManager.activityCount.Set(float64(count))
}

// UpdateActivityOccupancy sets participant gauges for activity.
// Utilization is skipped for activities without a positive capacity.
func UpdateActivityOccupancy(activity string, participants, maxParticipants int) {
	globalManager.activityOccupancy.WithLabelValues(activity).Set(float64(participants))
	if maxParticipants > 0 {
		globalManager.activityUtilization.WithLabelValues(activity).Set(float64(participants) / float64(maxParticipants))
	}
}

// Event pipeline metrics.

func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

func RecordEventDropped() {
	globalManager.eventsDropped.Inc()
}

func RecordEventPublished(latencyMs float64) {
	globalManager.eventsPublished.Inc()
	globalManager.publishLatency.Observe(latencyMs)
}

func RecordPublishError() {
	globalManager.publishErrors.Inc()
}

func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// HTTP metrics.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// System metrics.

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
