package metrics

import "github.com/prometheus/client_golang/prometheus"

// Booking outcome labels.
const (
	BookingOutcomeCreated   = "created"
	BookingOutcomeRejected  = "availability_rejected"
	BookingOutcomeCancelled = "cancelled"
)

// BookingMetrics counts reservation workflow outcomes.
type BookingMetrics struct {
	outcomes *prometheus.CounterVec
}

// NewBookingMetrics registers the booking counters on the provided registerer.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_outcomes_total",
		Help: "Booking workflow outcomes by result.",
	}, []string{"outcome"})
	reg.MustRegister(outcomes)
	return &BookingMetrics{outcomes: outcomes}
}

// IncOutcome increments the counter for the named outcome.
func (b *BookingMetrics) IncOutcome(outcome string) {
	if b == nil || b.outcomes == nil {
		return
	}
	b.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}
