package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Даты с бронью в этих статусах закрыты для новых записей.
func (s BookingStatus) BlocksDate() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	ID          int64         `json:"id"`
	ClientID    int64         `json:"client_id"`
	ProviderID  int64         `json:"provider_id"`
	OfferingID  *int64        `json:"offering_id"`
	BookingDate string        `json:"booking_date"`
	StartTime   string        `json:"start_time"`
	Status      BookingStatus `json:"status"`
	Comment     string        `json:"comment,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	ClientName   string `json:"client_name,omitempty"`
	ClientPhone  string `json:"client_phone,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

type CreateBookingDTO struct {
	ProviderID  int64  `json:"provider_id" binding:"required"`
	OfferingID  *int64 `json:"offering_id"`
	BookingDate string `json:"booking_date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	Comment     string `json:"comment"`
}

type UpdateBookingDTO struct {
	Status *BookingStatus `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
}

type BookingFilter struct {
	ClientID   *int64         `json:"client_id"`
	ProviderID *int64         `json:"provider_id"`
	Status     *BookingStatus `json:"status"`
	StartDate  *string        `json:"start_date"`
	EndDate    *string        `json:"end_date"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}
