package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

// ReviewHandler exposes review endpoints.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List handles GET /api/reviews?serviceId=.
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.reviews.ListForService(c.Request().Context(), c.QueryParam("serviceId"))
	if err != nil {
		return respondError(c, err, "failed to fetch reviews")
	}
	return Success(c, http.StatusOK, reviews)
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	review, err := h.reviews.Create(c.Request().Context(), actor, req)
	if err != nil {
		return respondError(c, err, "failed to create review")
	}
	return Success(c, http.StatusCreated, review)
}

// Delete handles DELETE /api/reviews/:id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.reviews.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete review")
	}
	return Success(c, http.StatusNoContent, nil)
}

// MarkHelpful handles POST /api/reviews/:id/helpful.
func (h *ReviewHandler) MarkHelpful(c echo.Context) error {
	review, err := h.reviews.MarkHelpful(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to update review")
	}
	return Success(c, http.StatusOK, review)
}
