package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixpoints/fixpoints-api/internal/places"
	"github.com/fixpoints/fixpoints-api/internal/repository"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success writes data as the response body.
func Success(c echo.Context, status int, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	if data == nil {
		return c.NoContent(status)
	}
	return c.JSON(status, data)
}

// Error sends an error response using the shared body format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ErrorResponse{Error: message})
}

// respondError maps domain errors to HTTP statuses. Unknown errors are logged
// and answered with 500 and the fallback message.
func respondError(c echo.Context, err error, fallback string) error {
	status, message := classify(err)
	if status == 0 {
		status, message = http.StatusInternalServerError, fallback
	}
	logFailure(c, err, status, message)
	return Error(c, status, message)
}

func logFailure(c echo.Context, err error, status int, message string) {
	if status < http.StatusInternalServerError {
		return
	}
	zerolog.Ctx(c.Request().Context()).Error().Err(err).Int("status", status).Msg(message)
}

func classify(err error) (int, string) {
	var (
		validationErr service.ValidationError
		upstreamErr   *places.UpstreamError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, service.ErrInvalidRating), errors.Is(err, places.ErrMissingCategory):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrAlreadyFavorited):
		return http.StatusConflict, err.Error()
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, "resource already exists"
	case errors.Is(err, places.ErrNotConfigured):
		return http.StatusInternalServerError, "google places api key not configured"
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, "failed to fetch places"
	}
	return 0, ""
}
