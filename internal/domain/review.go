package domain

import (
	"time"
)

type Review struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	ProviderID int64     `json:"provider_id"`
	BookingID  int64     `json:"booking_id"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	ClientName string `json:"client_name,omitempty"`
}

type CreateReviewDTO struct {
	ProviderID int64  `json:"provider_id" binding:"required"`
	BookingID  int64  `json:"booking_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Text       string `json:"text" binding:"required"`
}

type UpdateReviewDTO struct {
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Text   *string `json:"text"`
}

type ReviewFilter struct {
	ProviderID *int64 `json:"provider_id"`
	ClientID   *int64 `json:"client_id"`
	MinRating  *int   `json:"min_rating"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}
