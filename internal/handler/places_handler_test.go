package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fixpoints/fixpoints-api/internal/config"
	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/listing"
	"github.com/fixpoints/fixpoints-api/internal/places"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

func newPlacesHandler(source places.Source) *PlacesHandler {
	cfg := config.PlacesConfig{DefaultLocation: "Praha, Czech Republic", DefaultRadius: 10000}
	return NewPlacesHandler(service.NewSearchService(source, cfg))
}

func garageListings(n int) []entity.Listing {
	out := make([]entity.Listing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entity.Listing{
			ID:          fmt.Sprintf("p%d", i),
			Name:        fmt.Sprintf("Autoopravna %d", i),
			Rating:      4.0,
			ReviewCount: i,
			Types:       []string{"car_repair"},
		})
	}
	return out
}

func TestPlacesHandler_Places(t *testing.T) {
	e := newTestEcho()

	tests := map[string]struct {
		target     string
		source     *stubPlacesSource
		expectCode int
	}{
		"missing category": {target: "/api/places", source: &stubPlacesSource{}, expectCode: http.StatusBadRequest},
		"bad radius":       {target: "/api/places?category=pneuservis&radius=-5", source: &stubPlacesSource{}, expectCode: http.StatusBadRequest},
		"not configured":   {target: "/api/places?category=pneuservis", source: &stubPlacesSource{err: places.ErrNotConfigured}, expectCode: http.StatusInternalServerError},
		"upstream failure": {target: "/api/places?category=pneuservis", source: &stubPlacesSource{err: &places.UpstreamError{Status: "REQUEST_DENIED"}}, expectCode: http.StatusBadGateway},
		"success":          {target: "/api/places?category=pneuservis&location=Brno", source: &stubPlacesSource{listings: garageListings(2)}, expectCode: http.StatusOK},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			_ = newPlacesHandler(tt.source).Places(e.NewContext(httptest.NewRequest(http.MethodGet, tt.target, nil), rec))
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, rec.Code, rec.Body.String())
			}
		})
	}

	rec := httptest.NewRecorder()
	_ = newPlacesHandler(&stubPlacesSource{listings: garageListings(2)}).Places(
		e.NewContext(httptest.NewRequest(http.MethodGet, "/api/places?category=autoopravna&location=Brno", nil), rec))
	var resp dto.PlacesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || resp.Location != "Brno" || resp.Category != "autoopravna" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPlacesHandler_Search(t *testing.T) {
	e := newTestEcho()

	t.Run("paginated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		target := "/api/search?service=autoopravna&sort=reviews&page=3&limit=20"
		_ = newPlacesHandler(&stubPlacesSource{listings: garageListings(45)}).Search(
			e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp dto.SearchResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Listings) != 5 || resp.Pagination.Start != 41 || resp.Pagination.End != 45 || resp.Pagination.HasNext {
			t.Fatalf("unexpected page: %+v", resp.Pagination)
		}
		if resp.Listings[0].ReviewCount != 4 {
			t.Fatalf("expected reviews-desc order, first review count %d", resp.Listings[0].ReviewCount)
		}
	})

	t.Run("invalid min rating", func(t *testing.T) {
		rec := httptest.NewRecorder()
		_ = newPlacesHandler(&stubPlacesSource{}).Search(
			e.NewContext(httptest.NewRequest(http.MethodGet, "/api/search?min_rating=7", nil), rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("page out of range", func(t *testing.T) {
		rec := httptest.NewRecorder()
		target := "/api/search?service=autoopravna&page=461168601842738792&limit=20"
		_ = newPlacesHandler(&stubPlacesSource{listings: garageListings(45)}).Search(
			e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("page past the end", func(t *testing.T) {
		rec := httptest.NewRecorder()
		_ = newPlacesHandler(&stubPlacesSource{listings: garageListings(45)}).Search(
			e.NewContext(httptest.NewRequest(http.MethodGet, "/api/search?service=autoopravna&page=100000", nil), rec))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp dto.SearchResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Listings) != 0 || resp.Pagination.HasNext {
			t.Fatalf("expected empty last page, got %+v", resp.Pagination)
		}
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		_ = newPlacesHandler(&stubPlacesSource{}).Search(
			e.NewContext(httptest.NewRequest(http.MethodGet, "/api/search?lat=120&lng=14", nil), rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		_ = newPlacesHandler(&stubPlacesSource{err: &places.UpstreamError{Status: "OVER_QUERY_LIMIT"}}).Search(
			e.NewContext(httptest.NewRequest(http.MethodGet, "/api/search?service=pneuservis", nil), rec))
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		var body map[string]json.RawMessage
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if string(body["listings"]) != "[]" || len(body["error"]) == 0 {
			t.Fatalf("unexpected failure body: %s", rec.Body.String())
		}
	})
}

func TestPlacesHandler_ServiceTypes(t *testing.T) {
	e := newTestEcho()
	handler := newPlacesHandler(&stubPlacesSource{})

	rec := httptest.NewRecorder()
	_ = handler.ServiceTypes(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/service-types", nil), rec))
	var all []listing.ServiceType
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil || len(all) != len(listing.ServiceTypes()) {
		t.Fatalf("expected full catalogue, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	_ = handler.ServiceTypes(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/service-types?q=p", nil), rec))
	var none []listing.ServiceType
	if err := json.Unmarshal(rec.Body.Bytes(), &none); err != nil || len(none) != 0 {
		t.Fatalf("expected no suggestions for one character, got %s", rec.Body.String())
	}
}
