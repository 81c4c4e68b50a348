package dto

import (
	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// ServiceFilter contains query parameters for the services listing endpoint.
type ServiceFilter struct {
	Category string
	Search   string
	Location string
	Page     int
	Limit    int
}

// CreateServiceRequest is the payload for registering a new service.
// Category accepts either a category id or its slug.
type CreateServiceRequest struct {
	Name         string               `json:"name" validate:"required,min=2,max=50"`
	Description  string               `json:"description" validate:"required,min=10"`
	Category     string               `json:"category" validate:"required"`
	Address      string               `json:"address" validate:"required,min=5"`
	City         string               `json:"city" validate:"required,min=2"`
	State        string               `json:"state" validate:"required,min=2"`
	ZipCode      *string              `json:"zip_code,omitempty"`
	Phone        *string              `json:"phone,omitempty"`
	Email        *string              `json:"email,omitempty" validate:"omitempty,email"`
	Website      *string              `json:"website,omitempty"`
	PriceRange   *string              `json:"price_range,omitempty" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	Latitude     *float64             `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64             `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	OpeningHours *entity.OpeningHours `json:"opening_hours,omitempty"`
}

// ServiceResponse is a service enriched with its computed rating summary.
type ServiceResponse struct {
	entity.Service
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// Pagination describes a page of a server-side paginated collection.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination derives page counts from a total.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// ServiceListResponse is the envelope of GET /api/services.
type ServiceListResponse struct {
	Services   []ServiceResponse `json:"services"`
	Pagination Pagination        `json:"pagination"`
}

// VerifyServiceRequest toggles the verified badge.
type VerifyServiceRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// ImportResult summarises a CSV import.
type ImportResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}
