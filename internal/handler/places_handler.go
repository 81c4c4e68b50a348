package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/places"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

// PlacesHandler serves listings fetched from Google Places.
type PlacesHandler struct {
	search *service.SearchService
}

// NewPlacesHandler constructs a PlacesHandler.
func NewPlacesHandler(search *service.SearchService) *PlacesHandler {
	return &PlacesHandler{search: search}
}

// searchFailure keeps the listings key present when the search fails.
type searchFailure struct {
	Error    string           `json:"error"`
	Listings []entity.Listing `json:"listings"`
}

// Places handles GET /api/places.
func (h *PlacesHandler) Places(c echo.Context) error {
	q := places.Query{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Location: strings.TrimSpace(c.QueryParam("location")),
	}
	if q.Category == "" {
		return Error(c, http.StatusBadRequest, places.ErrMissingCategory.Error())
	}
	if raw := strings.TrimSpace(c.QueryParam("radius")); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil || radius <= 0 {
			return Error(c, http.StatusBadRequest, "radius must be a positive integer")
		}
		q.Radius = radius
	}

	resp, err := h.search.Places(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err, "failed to fetch places")
	}
	return Success(c, http.StatusOK, resp)
}

// Search handles GET /api/search.
func (h *PlacesHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := bind(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	lat, err := queryCoordinate(c, "lat", 90)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	lng, err := queryCoordinate(c, "lng", 180)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	req.Lat, req.Lng = lat, lng

	resp, err := h.search.Search(c.Request().Context(), req)
	if err != nil {
		status, message := classify(err)
		if status == 0 {
			status, message = http.StatusInternalServerError, "failed to search places"
		}
		logFailure(c, err, status, message)
		return c.JSON(status, searchFailure{Error: message, Listings: []entity.Listing{}})
	}
	return Success(c, http.StatusOK, resp)
}

// ServiceTypes handles GET /api/service-types?q=.
func (h *PlacesHandler) ServiceTypes(c echo.Context) error {
	return Success(c, http.StatusOK, h.search.ServiceTypes(c.QueryParam("q")))
}

func queryCoordinate(c echo.Context, name string, limit float64) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.Abs(value) > limit {
		return nil, fmt.Errorf("%s must be a number between -%g and %g", name, limit, limit)
	}
	return &value, nil
}
