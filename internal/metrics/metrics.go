package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Clubdesk
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Upstream campus API metrics
	UpstreamRequestsTotal   prometheus.CounterVec
	UpstreamRequestDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	CommitsTotal           prometheus.CounterVec
	SessionsRecoveredTotal prometheus.Counter
	StaleFetchesTotal      prometheus.Counter
	PointsDistributedTotal prometheus.Counter
}

var (
	defaultRegistry     *MetricsRegistry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry. promauto registers against
// the global Prometheus registerer, so the registry must be built exactly
// once per process.
func Default() *MetricsRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewMetricsRegistry()
	})
	return defaultRegistry
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubdesk_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clubdesk_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clubdesk_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Upstream campus API metrics
		UpstreamRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubdesk_upstream_requests_total",
				Help: "Total campus API calls by operation and result code",
			},
			[]string{"operation", "result"},
		),
		UpstreamRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clubdesk_upstream_request_duration_seconds",
				Help:    "Campus API call latency in seconds",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubdesk_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubdesk_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		CommitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubdesk_attendance_commits_total",
				Help: "Attendance commits by outcome",
			},
			[]string{"result"},
		),
		SessionsRecoveredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "clubdesk_sessions_recovered_total",
				Help: "Duplicate attendance sessions adopted instead of surfaced as errors",
			},
		),
		StaleFetchesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "clubdesk_stale_fetches_total",
				Help: "Roster loads discarded because a newer load superseded them",
			},
		),
		PointsDistributedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "clubdesk_points_distributed_total",
				Help: "Total point distribution operations performed",
			},
		),
	}
}
