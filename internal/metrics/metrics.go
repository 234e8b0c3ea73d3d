// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fraud_check"

// Submission outcomes.
const (
	OutcomeScored             = "scored"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeTransportError     = "transport_error"
	OutcomeNormalizationError = "normalization_error"
)

type Metrics struct {
	Submissions   *prometheus.CounterVec
	StaleResults  prometheus.Counter
	OracleLatency *prometheus.HistogramVec
	InFlight      prometheus.Gauge
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer to
// expose them through promhttp.Handler().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Resolved submissions by outcome and fail-safe policy.",
		}, []string{"outcome", "policy"}),
		StaleResults: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_total",
			Help:      "Results discarded because a newer submission had started.",
		}),
		OracleLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_request_duration_seconds",
			Help:      "Latency of oracle calls by result.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inflight_oracle_requests",
			Help:      "Oracle calls currently in flight, stale ones included.",
		}),
	}
}

func (m *Metrics) ObserveSubmission(outcome, policy string) {
	m.Submissions.WithLabelValues(outcome, policy).Inc()
}

func (m *Metrics) ObserveOracleCall(result string, d time.Duration) {
	m.OracleLatency.WithLabelValues(result).Observe(d.Seconds())
}

func (m *Metrics) ObserveStale() {
	m.StaleResults.Inc()
}
