package dto

import "time"

// DefaultServiceImage is shown for services without photos.
const DefaultServiceImage = "/services/default-service.svg"

// AddFavoriteRequest bookmarks a service.
type AddFavoriteRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
}

// FavoriteService is the service summary embedded in a favorite.
type FavoriteService struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	City          string  `json:"city"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
	Image         string  `json:"image"`
	PriceRange    *string `json:"price_range,omitempty"`
	IsVerified    bool    `json:"is_verified"`
}

// FavoriteResponse represents a favorite returned to clients.
type FavoriteResponse struct {
	ID        string           `json:"id"`
	ServiceID string           `json:"service_id"`
	CreatedAt time.Time        `json:"created_at"`
	Service   *FavoriteService `json:"service,omitempty"`
}
