package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/service"
)

// CategoryHandler serves the category catalogue.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "failed to fetch categories")
	}
	return Success(c, http.StatusOK, categories)
}

// Get handles GET /api/categories/:slug.
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categories.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, err, "failed to fetch category")
	}
	return Success(c, http.StatusOK, category)
}
