package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

// AdminHandler groups the moderation and ingestion endpoints reserved for admins.
type AdminHandler struct {
	catalog *service.CatalogService
	reviews *service.ReviewService
}

// NewAdminHandler wires a handler backed by the catalogue and review services.
func NewAdminHandler(catalog *service.CatalogService, reviews *service.ReviewService) *AdminHandler {
	return &AdminHandler{catalog: catalog, reviews: reviews}
}

// ImportServices handles POST /api/admin/services/import requests.
func (h *AdminHandler) ImportServices(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	summary, err := h.catalog.ImportServicesCSV(c.Request().Context(), file)
	if err != nil {
		return respondError(c, err, "failed to process csv")
	}

	return Success(c, http.StatusOK, summary)
}

// VerifyService handles PATCH /api/admin/services/:id/verify requests.
func (h *AdminHandler) VerifyService(c echo.Context) error {
	var req dto.VerifyServiceRequest
	if err := bind(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	if req.Verified == nil {
		return Error(c, http.StatusBadRequest, "verified is required")
	}

	if err := h.catalog.SetVerified(c.Request().Context(), c.Param("id"), *req.Verified); err != nil {
		return respondError(c, err, "failed to update service")
	}
	return Success(c, http.StatusOK, map[string]any{"id": c.Param("id"), "is_verified": *req.Verified})
}

// SetReviewVisibility handles PATCH /api/admin/reviews/:id/visibility requests.
func (h *AdminHandler) SetReviewVisibility(c echo.Context) error {
	var req dto.ReviewVisibilityRequest
	if err := bind(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	if req.Hidden == nil {
		return Error(c, http.StatusBadRequest, "hidden is required")
	}

	if err := h.reviews.SetHidden(c.Request().Context(), c.Param("id"), *req.Hidden); err != nil {
		return respondError(c, err, "failed to update review")
	}
	return Success(c, http.StatusOK, map[string]any{"id": c.Param("id"), "is_hidden": *req.Hidden})
}
