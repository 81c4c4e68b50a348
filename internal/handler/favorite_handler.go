package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

// FavoriteHandler exposes the bookmark endpoints of the current user.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler constructs a FavoriteHandler.
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List handles GET /api/favorites.
func (h *FavoriteHandler) List(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	favorites, err := h.favorites.List(c.Request().Context(), actor.UserID)
	if err != nil {
		return respondError(c, err, "failed to fetch favorites")
	}
	return Success(c, http.StatusOK, favorites)
}

// Add handles POST /api/favorites.
func (h *FavoriteHandler) Add(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.AddFavoriteRequest
	if err := bind(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	favorite, err := h.favorites.Add(c.Request().Context(), actor.UserID, req.ServiceID)
	if err != nil {
		return respondError(c, err, "failed to add favorite")
	}
	return Success(c, http.StatusCreated, favorite)
}

// Remove handles DELETE /api/favorites?serviceId=.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.favorites.Remove(c.Request().Context(), actor.UserID, c.QueryParam("serviceId")); err != nil {
		return respondError(c, err, "failed to remove favorite")
	}
	return Success(c, http.StatusOK, map[string]string{"message": "removed from favorites"})
}
