package service

import (
	"context"
	"strings"

	"github.com/fixpoints/fixpoints-api/internal/config"
	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/listing"
	"github.com/fixpoints/fixpoints-api/internal/places"
)

const defaultSearchCategory = "autoopravna"

// SearchService runs listing searches against the external places source.
type SearchService struct {
	source          places.Source
	defaultLocation string
	defaultRadius   int
}

// NewSearchService builds a SearchService using the configured places defaults.
func NewSearchService(source places.Source, cfg config.PlacesConfig) *SearchService {
	return &SearchService{
		source:          source,
		defaultLocation: cfg.DefaultLocation,
		defaultRadius:   cfg.DefaultRadius,
	}
}

// Places fetches the raw listings for a category and location.
func (s *SearchService) Places(ctx context.Context, q places.Query) (*dto.PlacesResponse, error) {
	q = q.WithDefaults(s.defaultLocation, s.defaultRadius)
	if q.Category == "" {
		return nil, places.ErrMissingCategory
	}

	listings, err := s.source.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return &dto.PlacesResponse{
		Services: listings,
		Total:    len(listings),
		Location: q.Location,
		Category: q.Category,
	}, nil
}

// Search fetches listings for the selected service type, then filters, sorts
// and paginates them. On upstream failure the response carries an empty page
// alongside the error.
func (s *SearchService) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	category := strings.TrimSpace(req.Service)
	if category == "" {
		category = defaultSearchCategory
	}
	q := places.Query{Category: category, Location: req.Location}.WithDefaults(s.defaultLocation, s.defaultRadius)

	criteria := listing.Criteria{
		Query:     req.Query,
		MinRating: req.MinRating,
		Sort:      listing.ParseSortKey(req.Sort),
		Page:      req.Page,
		PageSize:  req.Limit,
	}
	var selected *listing.ServiceType
	if st, ok := listing.LookupServiceType(req.Service); ok {
		selected = &st
		criteria.ServiceType = &st
	}
	if req.Lat != nil && req.Lng != nil {
		criteria.Origin = &entity.GeoPoint{Lat: *req.Lat, Lng: *req.Lng}
	}

	result := listing.Run(ctx, func(ctx context.Context) ([]entity.Listing, error) {
		return s.source.Search(ctx, q)
	}, criteria)

	return &dto.SearchResponse{
		Listings:   result.Page.Items,
		Pagination: result.Page.Meta,
		Service:    selected,
		Location:   q.Location,
	}, result.Err
}

// ServiceTypes returns autocomplete suggestions, or the whole catalogue when q is empty.
func (s *SearchService) ServiceTypes(q string) []listing.ServiceType {
	if strings.TrimSpace(q) == "" {
		return listing.ServiceTypes()
	}
	return listing.Suggest(q)
}
