package service

import (
	"testing"

	"glow/internal/domain"
)

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		from domain.BookingStatus
		to   domain.BookingStatus
		want bool
	}{
		{domain.BookingStatusPending, domain.BookingStatusConfirmed, true},
		{domain.BookingStatusPending, domain.BookingStatusCancelled, true},
		{domain.BookingStatusPending, domain.BookingStatusCompleted, false},
		{domain.BookingStatusConfirmed, domain.BookingStatusCompleted, true},
		{domain.BookingStatusConfirmed, domain.BookingStatusCancelled, true},
		{domain.BookingStatusConfirmed, domain.BookingStatusPending, false},
		{domain.BookingStatusCompleted, domain.BookingStatusCancelled, false},
		{domain.BookingStatusCompleted, domain.BookingStatusPending, false},
		{domain.BookingStatusCancelled, domain.BookingStatusConfirmed, false},
		{domain.BookingStatusCancelled, domain.BookingStatusPending, false},
	}

	for _, tt := range tests {
		if got := transitionAllowed(tt.from, tt.to); got != tt.want {
			t.Errorf("transitionAllowed(%s, %s) = %v, ожидалось %v", tt.from, tt.to, got, tt.want)
		}
	}
}
