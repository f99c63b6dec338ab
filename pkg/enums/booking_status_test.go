package enums

import "testing"

func TestBookingStatusIsValid(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCheckedIn,
		BookingStatusCheckedOut,
		BookingStatusCancelled,
		BookingStatusNoShow,
	} {
		if !status.IsValid() {
			t.Fatalf("%s should be valid", status)
		}
	}
	if BookingStatus("refunded").IsValid() {
		t.Fatalf("unknown status should be invalid")
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to BookingStatus
	}{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusPending, BookingStatusNoShow},
		{BookingStatusConfirmed, BookingStatusCheckedIn},
		{BookingStatusConfirmed, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusNoShow},
		{BookingStatusCheckedIn, BookingStatusCheckedOut},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("%s -> %s should be allowed", tt.from, tt.to)
		}
	}

	denied := []struct {
		from, to BookingStatus
	}{
		{BookingStatusPending, BookingStatusCheckedIn},
		{BookingStatusPending, BookingStatusCheckedOut},
		{BookingStatusConfirmed, BookingStatusCheckedOut},
		{BookingStatusCheckedIn, BookingStatusCancelled},
		{BookingStatusCheckedOut, BookingStatusCheckedIn},
		{BookingStatusCancelled, BookingStatusConfirmed},
		{BookingStatusNoShow, BookingStatusPending},
	}
	for _, tt := range denied {
		if tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("%s -> %s should be rejected", tt.from, tt.to)
		}
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	terminal := []BookingStatus{BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow}
	for _, status := range terminal {
		if !status.IsTerminal() {
			t.Fatalf("%s should be terminal", status)
		}
	}
	live := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn}
	for _, status := range live {
		if status.IsTerminal() {
			t.Fatalf("%s should not be terminal", status)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("checked_in")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if status != BookingStatusCheckedIn {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParseBookingStatus("CHECKED_IN"); err == nil {
		t.Fatalf("expected case-sensitive parse to fail")
	}
	if _, err := ParseBookingStatus(""); err == nil {
		t.Fatalf("expected empty string to fail")
	}
}
