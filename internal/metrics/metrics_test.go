package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSubmission(OutcomeScored, "fail-closed")
	m.ObserveSubmission(OutcomeScored, "fail-closed")
	m.ObserveSubmission(OutcomeInvalidInput, "fail-open")
	m.ObserveStale()
	m.ObserveOracleCall("ok", 120*time.Millisecond)
	m.ObserveOracleCall("timeout", 10*time.Second)

	if got := testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeScored, "fail-closed")); got != 2 {
		t.Errorf("expected 2 scored submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeInvalidInput, "fail-open")); got != 1 {
		t.Errorf("expected 1 invalid submission, got %v", got)
	}
	if got := testutil.ToFloat64(m.StaleResults); got != 1 {
		t.Errorf("expected 1 stale result, got %v", got)
	}
	if got := testutil.CollectAndCount(m.OracleLatency); got != 2 {
		t.Errorf("expected 2 latency series, got %d", got)
	}
}

func TestNew_SeparateRegistries(t *testing.T) {
	// Registering twice on one registry panics; fresh registries must not.
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
