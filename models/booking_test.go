package models

import (
	"testing"
	"time"
)

// TestCanTransitionBooking verifies the state machine transition table
// without a database.
func TestCanTransitionBooking(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		// the four legal edges
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		// terminal states have no outgoing transitions
		{BookingCompleted, BookingPending, false},
		{BookingCompleted, BookingConfirmed, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCancelled, BookingCompleted, false},
		// no skipping or going backwards
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingPending, false},
		{BookingPending, BookingPending, false},
		{BookingConfirmed, BookingConfirmed, false},
	}
	for _, tc := range cases {
		got := CanTransitionBooking(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransitionBooking(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanChangeTrust(t *testing.T) {
	cases := []struct {
		from, to TrustState
		want     bool
	}{
		{TrustPending, TrustVerified, true},
		{TrustPending, TrustRejected, true},
		{TrustVerified, TrustSuspended, true},
		{TrustSuspended, TrustVerified, true},
		// rejected is terminal
		{TrustRejected, TrustVerified, false},
		{TrustRejected, TrustPending, false},
		// no shortcuts
		{TrustPending, TrustSuspended, false},
		{TrustVerified, TrustRejected, false},
		{TrustSuspended, TrustRejected, false},
		{TrustVerified, TrustPending, false},
	}
	for _, tc := range cases {
		got := CanChangeTrust(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanChangeTrust(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestBookingStartsAt(t *testing.T) {
	b := Booking{
		Date:     time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		TimeSlot: "14:30",
	}
	got := b.StartsAt()
	want := time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartsAt() = %v, want %v", got, want)
	}

	if !b.IsPast(time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)) {
		t.Error("expected booking to be past one half hour after its slot")
	}
	if b.IsPast(time.Date(2025, 6, 12, 14, 0, 0, 0, time.UTC)) {
		t.Error("expected booking not to be past before its slot")
	}
}
