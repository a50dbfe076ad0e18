package domain

import (
	"time"
)

// Offering — услуга из прайс-листа мастера.
type Offering struct {
	ID          int64     `json:"id"`
	ProviderID  int64     `json:"provider_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	DurationMin int       `json:"duration_min"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateOfferingDTO struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	DurationMin int     `json:"duration_min" binding:"required,min=15,max=480"`
}

type UpdateOfferingDTO struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	DurationMin *int     `json:"duration_min" binding:"omitempty,min=15,max=480"`
	IsActive    *bool    `json:"is_active"`
}
