package dto

import (
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/listing"
)

// PlacesResponse is the envelope of GET /api/places.
type PlacesResponse struct {
	Services []entity.Listing `json:"services"`
	Total    int              `json:"total"`
	Location string           `json:"location"`
	Category string           `json:"category"`
}

// SearchRequest carries the query parameters of GET /api/search. Lat and Lng
// are parsed by the handler; both must be set for distance sorting.
type SearchRequest struct {
	Service   string   `query:"service"`
	Query     string   `query:"q"`
	Location  string   `query:"location"`
	MinRating float64  `query:"min_rating" validate:"gte=0,lte=5"`
	Sort      string   `query:"sort"`
	Page      int      `query:"page" validate:"gte=0,lte=100000"`
	Limit     int      `query:"limit" validate:"gte=0,lte=100"`
	Lat       *float64 `json:"-"`
	Lng       *float64 `json:"-"`
}

// SearchResponse is the envelope of GET /api/search.
type SearchResponse struct {
	Listings   []entity.Listing     `json:"listings"`
	Pagination listing.PageMeta     `json:"pagination"`
	Service    *listing.ServiceType `json:"service,omitempty"`
	Location   string               `json:"location"`
}
