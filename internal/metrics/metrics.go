package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission results
const (
	ResultAccepted  = "accepted"
	ResultDeclined  = "declined"
	ResultInvalid   = "invalid"
	ResultDuplicate = "duplicate"
	ResultFailed    = "failed"
)

// Metrics holds the service's collectors. Each instance registers against its
// own registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	submissions      *prometheus.CounterVec
	snapshotDuration prometheus.Histogram
	snapshotFailures prometheus.Counter
	snapshotRows     prometheus.Histogram
	exports          *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_submissions_total",
			Help: "Survey submissions by result",
		}, []string{"result"}),

		snapshotDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "survey_snapshot_duration_seconds",
			Help:    "Time to fetch and aggregate an analytics snapshot",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),

		snapshotFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "survey_snapshot_failures_total",
			Help: "Analytics snapshots that fell back to the failure result",
		}),

		snapshotRows: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "survey_snapshot_rows",
			Help:    "Rows aggregated per analytics snapshot",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
		}),

		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_exports_total",
			Help: "Exports by format and result",
		}, []string{"format", "result"}),
	}
}

func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSnapshot(d time.Duration, rows int, failed bool) {
	if m == nil {
		return
	}
	m.snapshotDuration.Observe(d.Seconds())
	if failed {
		m.snapshotFailures.Inc()
		return
	}
	m.snapshotRows.Observe(float64(rows))
}

func (m *Metrics) ObserveExport(format string, success bool) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	m.exports.WithLabelValues(format, result).Inc()
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
