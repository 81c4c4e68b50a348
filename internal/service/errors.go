package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// Domain errors returned by the services; handlers map them to HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed    = errors.New("you have already reviewed this service")
	ErrAlreadyFavorited   = errors.New("service is already in favorites")
	ErrForbidden          = errors.New("insufficient permissions")
)

// ValidationError indicates that caller-supplied input is invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return ValidationError{Message: msg}
}

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// CanModify reports whether the actor owns the resource or is an admin.
func (a Actor) CanModify(owner *uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return owner != nil && *owner == a.UserID && a.UserID != uuid.Nil
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("invalid " + field)
	}
	return id, nil
}
