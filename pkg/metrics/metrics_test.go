package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTransitionCounter(t *testing.T) {
	m := New()

	m.Transition("APPROVED", "ok")
	m.Transition("APPROVED", "ok")
	m.Transition("REJECTED", "conflict")

	if got := testutil.ToFloat64(m.RequestTransitions.WithLabelValues("APPROVED", "ok")); got != 2 {
		t.Errorf("expected 2 approved transitions, got %v", got)
	}
	if got := testutil.ToFloat64(m.RequestTransitions.WithLabelValues("REJECTED", "conflict")); got != 1 {
		t.Errorf("expected 1 conflicting transition, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RequestCreated("EVENT")
	m.Transition("APPROVED", "ok")
	m.Login("ok")
}
