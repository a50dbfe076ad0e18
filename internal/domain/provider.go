package domain

import (
	"time"
)

type Provider struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	SalonName    string          `json:"salon_name"`
	Bio          string          `json:"bio"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	Rating       float64         `json:"rating"`
	ReviewsCount int             `json:"reviews_count"`
	IsVerified   bool            `json:"is_verified"`
	AvatarURL    string          `json:"avatar_url"`
	Portfolio    []PortfolioItem `json:"portfolio,omitempty"`
	User         User            `json:"user"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PortfolioItem — фотография работы мастера в его профиле.
type PortfolioItem struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	ImageURL   string    `json:"image_url"`
	Caption    string    `json:"caption,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateProviderDTO struct {
	SalonName string `json:"salon_name" binding:"required"`
	Bio       string `json:"bio"`
	Address   string `json:"address"`
	City      string `json:"city" binding:"required"`
}

type UpdateProviderDTO struct {
	SalonName *string `json:"salon_name"`
	Bio       *string `json:"bio"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
}

type ProviderFilter struct {
	City   *string `json:"city"`
	Search *string `json:"search"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type AddPortfolioItemDTO struct {
	Caption string `json:"caption"`
	Image   []byte `json:"-"`
}
