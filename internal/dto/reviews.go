package dto

import (
	"time"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// CreateReviewRequest is the payload for posting a review.
type CreateReviewRequest struct {
	ServiceID string  `json:"service_id" validate:"required"`
	Rating    int     `json:"rating"`
	Title     *string `json:"title,omitempty" validate:"omitempty,min=5,max=100"`
	Content   string  `json:"content" validate:"required,min=10,max=1000"`
}

// ReviewVisibilityRequest hides or unhides a review.
type ReviewVisibilityRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

// ReviewAuthor is the public part of a review's author.
type ReviewAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReviewResponse represents a review returned to clients.
type ReviewResponse struct {
	ID           string        `json:"id"`
	ServiceID    string        `json:"service_id"`
	Rating       int           `json:"rating"`
	Title        *string       `json:"title,omitempty"`
	Content      string        `json:"content"`
	IsVerified   bool          `json:"is_verified"`
	HelpfulCount int           `json:"helpful_count"`
	CreatedAt    time.Time     `json:"created_at"`
	Author       *ReviewAuthor `json:"author,omitempty"`
}

// NewReviewResponse maps a review entity for output.
func NewReviewResponse(r entity.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:           r.ID.String(),
		ServiceID:    r.ServiceID.String(),
		Rating:       r.Rating,
		Title:        r.Title,
		Content:      r.Content,
		IsVerified:   r.IsVerified,
		HelpfulCount: r.HelpfulCount,
		CreatedAt:    r.CreatedAt,
	}
	if r.User != nil {
		resp.Author = &ReviewAuthor{ID: r.User.ID.String(), Name: r.User.DisplayName()}
	}
	return resp
}
