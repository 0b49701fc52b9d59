package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	slotFetchTotal   *prometheus.CounterVec
	submissionTotal  *prometheus.CounterVec
	submitLatency    prometheus.Histogram
	notifyTotal      *prometheus.CounterVec
	degradedDoctorLs prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		slotFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brightcare",
			Subsystem: "booking",
			Name:      "slot_fetch_total",
			Help:      "Slot fetches by outcome",
		}, []string{"status"}),
		submissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brightcare",
			Subsystem: "booking",
			Name:      "submission_total",
			Help:      "Booking submissions by outcome",
		}, []string{"status"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "brightcare",
			Subsystem: "booking",
			Name:      "submit_latency_seconds",
			Help:      "Latency of booking submissions",
			Buckets:   prometheus.DefBuckets,
		}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brightcare",
			Subsystem: "booking",
			Name:      "notification_total",
			Help:      "Booking notifications by channel and outcome",
		}, []string{"channel", "status"}),
		degradedDoctorLs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "brightcare",
			Subsystem: "booking",
			Name:      "doctor_list_degraded_total",
			Help:      "Times the fixed fallback doctor list was served",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotFetchTotal, m.submissionTotal, m.submitLatency, m.notifyTotal, m.degradedDoctorLs)
	return m
}

func (m *BookingMetrics) ObserveSlotFetch(status string) {
	if m == nil {
		return
	}
	m.slotFetchTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveSubmission(status string, seconds float64) {
	if m == nil {
		return
	}
	m.submissionTotal.WithLabelValues(status).Inc()
	m.submitLatency.Observe(seconds)
}

func (m *BookingMetrics) ObserveNotification(channel, status string) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(channel, status).Inc()
}

func (m *BookingMetrics) ObserveDegradedDoctorList() {
	if m == nil {
		return
	}
	m.degradedDoctorLs.Inc()
}
