// Package metrics provides Prometheus metrics for the killer game client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the metric instruments and the registry they live on.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	gatewayRequests  *prometheus.CounterVec
	gatewayLatency   *prometheus.HistogramVec
	resolutions      *prometheus.CounterVec
	sessionsStarted  prometheus.Counter
	sessionsExpired  prometheus.Counter
	missionsDone     prometheus.Counter
	guessesSubmitted prometheus.Counter
	rosterSize       prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "killer",
		subsystem: "client",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus instruments.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.gatewayRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gateway_requests_total",
		Help:      "Total gateway calls by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	m.gatewayLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gateway_request_duration_milliseconds",
		Help:      "Gateway call latency in milliseconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	m.resolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "name_resolutions_total",
		Help:      "Name resolution attempts by outcome (exact, normalized, miss, ambiguous, empty)",
	}, []string{"outcome"})

	m.sessionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Total successful logins",
	})

	m.sessionsExpired = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_expired_total",
		Help:      "Total sessions force-closed by countdown expiry",
	})

	m.missionsDone = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "missions_done_total",
		Help:      "Total missions declared done",
	})

	m.guessesSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "guesses_submitted_total",
		Help:      "Total killer accusations submitted",
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Number of players in the loaded roster",
	})
}

// RecordGatewayRequest counts a gateway call with its outcome label.
func RecordGatewayRequest(endpoint, outcome string) {
	globalManager.gatewayRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordGatewayLatency records gateway call latency in milliseconds.
func RecordGatewayLatency(endpoint string, latencyMs float64) {
	globalManager.gatewayLatency.WithLabelValues(endpoint).Observe(latencyMs)
}

// RecordResolution counts a name resolution attempt by outcome.
func RecordResolution(outcome string) {
	globalManager.resolutions.WithLabelValues(outcome).Inc()
}

// RecordSessionStarted increments the successful-logins counter.
func RecordSessionStarted() {
	globalManager.sessionsStarted.Inc()
}

// RecordSessionExpired increments the countdown-expiry counter.
func RecordSessionExpired() {
	globalManager.sessionsExpired.Inc()
}

// RecordMissionDone increments the missions-done counter.
func RecordMissionDone() {
	globalManager.missionsDone.Inc()
}

// RecordGuessSubmitted increments the guesses counter.
func RecordGuessSubmitted() {
	globalManager.guessesSubmitted.Inc()
}

// UpdateRosterSize sets the loaded-roster gauge.
func UpdateRosterSize(n int) {
	globalManager.rosterSize.Set(float64(n))
}

// GetRegistry returns the registry backing the global manager, for
// serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
