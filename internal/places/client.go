package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

const (
	defaultResultLimit = 20
	operational        = "OPERATIONAL"
	requestIDHeader    = "X-Request-ID"
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("google places api key not configured")
	// ErrMissingCategory is returned for queries without a category.
	ErrMissingCategory = errors.New("category is required")
)

// UpstreamError reports a failed or non-OK response from the places API.
type UpstreamError struct {
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("google places api error: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("google places api error: %s", e.Status)
}

// Source returns listings for a query.
type Source interface {
	Search(ctx context.Context, q Query) ([]entity.Listing, error)
}

// Client queries the Google Places text search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limit      int
}

// NewClient builds a places client. A nil httpClient gets an 8 second timeout.
func NewClient(httpClient *http.Client, baseURL, apiKey string, limit int) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	if limit <= 0 {
		limit = defaultResultLimit
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		limit:      limit,
	}
}

type textSearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	OpeningHours *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
	Types          []string `json:"types"`
	BusinessStatus string   `json:"business_status"`
	PriceLevel     *int     `json:"price_level"`
}

// Search runs a text search and maps operational results into listings.
func (c *Client) Search(ctx context.Context, q Query) ([]entity.Listing, error) {
	q = q.Normalize()
	if q.Category == "" {
		return nil, ErrMissingCategory
	}
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("query", SearchText(q.Category, q.Location))
	params.Set("type", GoogleType(q.Category))
	if q.Radius > 0 {
		params.Set("radius", strconv.Itoa(q.Radius))
	}
	params.Set("key", c.apiKey)
	params.Set("language", "cs")
	params.Set("region", "cz")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create places request: %w", err)
	}
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &UpstreamError{Status: resp.Status, Message: strings.TrimSpace(string(body))}
	}

	var payload textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("could not decode places response: %w", err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []entity.Listing{}, nil
	default:
		return nil, &UpstreamError{Status: payload.Status, Message: payload.ErrorMessage}
	}

	listings := make([]entity.Listing, 0, c.limit)
	for _, place := range payload.Results {
		if place.BusinessStatus != operational {
			continue
		}
		listings = append(listings, toListing(place, q.Category))
		if len(listings) == c.limit {
			break
		}
	}
	return listings, nil
}

func toListing(place placeResult, category string) entity.Listing {
	l := entity.Listing{
		ID:          place.PlaceID,
		Name:        place.Name,
		Address:     place.FormattedAddress,
		Rating:      place.Rating,
		ReviewCount: place.UserRatingsTotal,
		Location: entity.GeoPoint{
			Lat: place.Geometry.Location.Lat,
			Lng: place.Geometry.Location.Lng,
		},
		Types:      place.Types,
		PriceLevel: place.PriceLevel,
		Category:   category,
	}
	if l.Types == nil {
		l.Types = []string{}
	}
	if place.OpeningHours != nil {
		l.OpenNow = place.OpeningHours.OpenNow
	}
	if len(place.Photos) > 0 {
		l.PhotoReference = place.Photos[0].PhotoReference
	}
	return l
}

type requestIDKey struct{}

// WithRequestID attaches a request id that is forwarded upstream.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
