// Package metrics provides Prometheus metrics for editing sessions and
// layout commits.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names.
const (
	MetricCommitsTotal     = "roomplan_commits_total"
	MetricRejectionsTotal  = "roomplan_rejections_total"
	MetricGestureTicks     = "roomplan_gesture_ticks"
	MetricSessionsTotal    = "roomplan_ssh_sessions_total"
	MetricSessionsActive   = "roomplan_ssh_sessions_active"
	MetricSessionDurations = "roomplan_ssh_session_duration_seconds"
)

// Commit actions.
const (
	ActionPlacement = "placement"
	ActionDoor      = "door"
	ActionShape     = "shape"
	ActionDelete    = "delete"
	ActionImport    = "import"
)

// Commit outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics contains the Prometheus collectors. All operations are thread-safe.
// A nil *Metrics is valid and records nothing, so callers without a registry
// need no checks.
type Metrics struct {
	commits         *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	gestureTicks    prometheus.Histogram
	sessions        prometheus.Counter
	sessionsActive  prometheus.Gauge
	sessionDuration prometheus.Histogram
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricCommitsTotal,
				Help: "Total number of layout writes by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRejectionsTotal,
				Help: "Total number of drag or resize ticks the resolver held back, by reason",
			},
			[]string{"reason"},
		),
		gestureTicks: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricGestureTicks,
				Help:    "Ticks per committed gesture",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
			},
		),
		sessions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricSessionsTotal,
				Help: "Total number of SSH editing sessions",
			},
		),
		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricSessionsActive,
				Help: "SSH editing sessions currently open",
			},
		),
		sessionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricSessionDurations,
				Help:    "Histogram of SSH session duration in seconds",
				Buckets: []float64{10, 30, 60, 300, 900, 1800, 3600},
			},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all Prometheus collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.commits,
		m.rejections,
		m.gestureTicks,
		m.sessions,
		m.sessionsActive,
		m.sessionDuration,
	}
}

// IncCommit counts one layout write.
func (m *Metrics) IncCommit(action, outcome string) {
	if m == nil {
		return
	}
	m.commits.WithLabelValues(action, outcome).Inc()
}

// IncRejection counts one held-back gesture tick.
// reason: e.g. "collides", "overlaps cutout", "blocked"
func (m *Metrics) IncRejection(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

// ObserveGesture records the tick count of a committed gesture.
func (m *Metrics) ObserveGesture(ticks int) {
	if m == nil {
		return
	}
	m.gestureTicks.Observe(float64(ticks))
}

// SessionStarted records a new SSH session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessions.Inc()
	m.sessionsActive.Inc()
}

// SessionEnded records the end of an SSH session that lasted seconds.
func (m *Metrics) SessionEnded(seconds float64) {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
	m.sessionDuration.Observe(seconds)
}

// Handler returns an HTTP handler exposing the registry in the Prometheus
// text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
