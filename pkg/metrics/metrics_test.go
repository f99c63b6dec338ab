package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("POST", "/api/v1/bookings", "201", 150*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/bookings", "201", 250*time.Millisecond)
	m.IncInflight()
	m.DecInflight()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var histogram *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "http_request_duration_seconds" {
			histogram = mf
		}
	}
	if histogram == nil {
		t.Fatal("request duration histogram not registered")
	}
	if count := histogram.GetMetric()[0].GetHistogram().GetSampleCount(); count != 2 {
		t.Fatalf("expected 2 samples, got %d", count)
	}
}

func TestBookingMetricsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.IncOutcome(BookingOutcomeCreated)
	m.IncOutcome(BookingOutcomeCreated)
	m.IncOutcome(BookingOutcomeRejected)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "booking_outcomes_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" {
					counts[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	if counts[BookingOutcomeCreated] != 2 {
		t.Fatalf("expected 2 created, got %v", counts[BookingOutcomeCreated])
	}
	if counts[BookingOutcomeRejected] != 1 {
		t.Fatalf("expected 1 rejected, got %v", counts[BookingOutcomeRejected])
	}
}

func TestNilSafeMetrics(t *testing.T) {
	var h *HTTPMetrics
	var b *BookingMetrics
	h.ObserveRequest("GET", "/", "200", time.Second)
	h.IncInflight()
	h.DecInflight()
	b.IncOutcome(BookingOutcomeCancelled)
}
