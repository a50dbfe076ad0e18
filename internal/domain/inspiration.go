package domain

import (
	"time"
)

// Inspiration — публикация в ленте идей: фото работы с подписью и тегами.
type Inspiration struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	ImageURL   string    `json:"image_url"`
	Caption    string    `json:"caption,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	SalonName string `json:"salon_name,omitempty"`
}

type CreateInspirationDTO struct {
	Caption string   `json:"caption"`
	Tags    []string `json:"tags"`
	Image   []byte   `json:"-"`
}

type InspirationFilter struct {
	ProviderID *int64  `json:"provider_id"`
	Tag        *string `json:"tag"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}
