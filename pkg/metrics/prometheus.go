package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets covers sub-millisecond aggregation up to multi-second provider fetches.
var latencyBuckets = []float64{0.5, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000} //nolint:gochecknoglobals

// Manager holds every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Provider
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	providerErrors   *prometheus.CounterVec
	eventsFetched    prometheus.Counter

	// Aggregation
	aggregationLatency *prometheus.HistogramVec
	emptyResults       *prometheus.CounterVec
	eventsSkipped      *prometheus.CounterVec

	// CSV export memo
	csvCacheHits    prometheus.Counter
	csvCacheMisses  prometheus.Counter
	csvCacheEntries prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	configReloads *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchscope",
		histogramBuckets: latencyBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels, Buckets: m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen
	auto := promauto.With(m.registry)

	m.providerRequests = auto.NewCounterVec(
		m.counterOpts("provider_requests_total", "Requests sent to the event data provider"),
		[]string{"endpoint", "status_code"},
	)
	m.providerLatency = auto.NewHistogramVec(
		m.histogramOpts("provider_request_duration_milliseconds", "Provider request duration in milliseconds"),
		[]string{"endpoint"},
	)
	m.providerErrors = auto.NewCounterVec(
		m.counterOpts("provider_errors_total", "Failed provider requests by kind"),
		[]string{"endpoint", "kind"},
	)
	m.eventsFetched = auto.NewCounter(
		m.counterOpts("provider_events_fetched_total", "Match events decoded from the provider"),
	)

	m.aggregationLatency = auto.NewHistogramVec(
		m.histogramOpts("aggregation_duration_milliseconds", "Recompute duration in milliseconds"),
		[]string{"operation"},
	)
	m.emptyResults = auto.NewCounterVec(
		m.counterOpts("aggregation_empty_results_total", "Aggregations that produced no result"),
		[]string{"operation"},
	)
	m.eventsSkipped = auto.NewCounterVec(
		m.counterOpts("chart_events_skipped_total", "Events left off a pitch map for missing coordinates"),
		[]string{"chart"},
	)

	m.csvCacheHits = auto.NewCounter(m.counterOpts("csv_cache_hits_total", "CSV exports served from the memo"))
	m.csvCacheMisses = auto.NewCounter(m.counterOpts("csv_cache_misses_total", "CSV exports encoded from scratch"))
	m.csvCacheEntries = auto.NewGauge(m.gaugeOpts("csv_cache_entries", "Entries held by the CSV memo"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpErrors = auto.NewCounterVec(
		m.counterOpts("http_errors_total", "HTTP error responses by endpoint and error code"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.configReloads = auto.NewCounterVec(
		m.counterOpts("config_reloads_total", "Config file reloads by result"),
		[]string{"result"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Heap memory in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds", "Last GC pause in milliseconds"))
}

// Provider Metrics Functions.

// RecordProviderRequest counts a provider round trip and its latency.
func RecordProviderRequest(endpoint, statusCode string, latencyMs float64) {
	globalManager.providerRequests.WithLabelValues(endpoint, statusCode).Inc()
	globalManager.providerLatency.WithLabelValues(endpoint).Observe(latencyMs)
}

// RecordProviderError counts a failed provider call. kind is transport, status or decode.
func RecordProviderError(endpoint, kind string) {
	globalManager.providerErrors.WithLabelValues(endpoint, kind).Inc()
}

// RecordEventsFetched adds n decoded events.
func RecordEventsFetched(n int) {
	globalManager.eventsFetched.Add(float64(n))
}

// Aggregation Metrics Functions.

// RecordAggregationLatency observes one recompute.
func RecordAggregationLatency(operation string, latencyMs float64) {
	globalManager.aggregationLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordEmptyResult counts an aggregation that fell back to a placeholder.
func RecordEmptyResult(operation string) {
	globalManager.emptyResults.WithLabelValues(operation).Inc()
}

// RecordEventsSkipped counts events dropped from a chart.
func RecordEventsSkipped(chart string, n int) {
	if n <= 0 {
		return
	}
	globalManager.eventsSkipped.WithLabelValues(chart).Add(float64(n))
}

// CSV Memo Metrics Functions.

func RecordCSVCacheHit()  { globalManager.csvCacheHits.Inc() }
func RecordCSVCacheMiss() { globalManager.csvCacheMisses.Inc() }

// UpdateCSVCacheEntries sets the memo size.
func UpdateCSVCacheEntries(n int) {
	globalManager.csvCacheEntries.Set(float64(n))
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError records an error response with its API error code.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordConfigReload counts a config file reload; ok reports whether it applied.
func RecordConfigReload(ok bool) {
	result := "applied"
	if !ok {
		result = "rejected"
	}
	globalManager.configReloads.WithLabelValues(result).Inc()
}

// System Performance Metrics Functions.

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
