package dto

import (
	"time"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// UpdateUserRequest captures administrator-triggered partial updates.
type UpdateUserRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Role *string `json:"role,omitempty"`
}

// UserResponse represents user data returned to clients.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	Image     *string   `json:"image,omitempty"`
	Role      string    `json:"role"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse strips credentials from a user entity.
func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		Role:      u.Role,
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
	}
}
