package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveSubmission("confirmed", 0.05)
	m.ObserveSubmission("conflict", 0.02)
	m.ObserveSubmission("conflict", 0.03)

	if got := testutil.ToFloat64(m.submissionTotal.WithLabelValues("conflict")); got != 2 {
		t.Errorf("conflict count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.submissionTotal.WithLabelValues("confirmed")); got != 1 {
		t.Errorf("confirmed count = %v, want 1", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveSlotFetch("ok")
	m.ObserveSubmission("confirmed", 0.1)
	m.ObserveNotification("webhook", "failed")
	m.ObserveDegradedDoctorList()
}
