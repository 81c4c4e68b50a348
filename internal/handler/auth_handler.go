package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/middleware"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register requests.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "unable to register user")
	}

	return Success(c, http.StatusCreated, token)
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "unable to authenticate")
	}

	return Success(c, http.StatusOK, token)
}

// Me handles GET /api/me requests.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "unable to load user")
	}
	return Success(c, http.StatusOK, user)
}

func actorFrom(c echo.Context) (service.Actor, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: middleware.RoleFromContext(c)}, true
}
