package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/repository"
)

// ReviewService manages user reviews of catalogue services.
type ReviewService struct {
	reviews  repository.ReviewsRepository
	services repository.ServicesRepository
}

// NewReviewService builds a ReviewService.
func NewReviewService(reviews repository.ReviewsRepository, services repository.ServicesRepository) *ReviewService {
	return &ReviewService{reviews: reviews, services: services}
}

// ListForService returns the visible reviews of a service, newest first.
func (s *ReviewService) ListForService(ctx context.Context, serviceID string) ([]dto.ReviewResponse, error) {
	if strings.TrimSpace(serviceID) == "" {
		return nil, invalid("serviceId is required")
	}
	id, err := parseID(serviceID, "serviceId")
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByService(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, dto.NewReviewResponse(r))
	}
	return out, nil
}

// Create stores a review by the actor. Each user may review a service once.
func (s *ReviewService) Create(ctx context.Context, actor Actor, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if !entity.ValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}
	title := trimmedPtr(req.Title)
	if title != nil {
		if err := validateLength(*title, "title", 5, 100); err != nil {
			return nil, err
		}
	}
	content := strings.TrimSpace(req.Content)
	if err := validateLength(content, "content", 10, 1000); err != nil {
		return nil, err
	}
	serviceID, err := parseID(strings.TrimSpace(req.ServiceID), "service id")
	if err != nil {
		return nil, err
	}

	exists, err := s.services.Exists(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrServiceNotFound
	}

	review := &entity.Review{
		Rating:    req.Rating,
		Title:     title,
		Content:   content,
		UserID:    actor.UserID,
		ServiceID: serviceID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	stored, err := s.reviews.FindByID(ctx, review.ID)
	if err != nil {
		resp := dto.NewReviewResponse(*review)
		return &resp, nil
	}
	resp := dto.NewReviewResponse(*stored)
	return &resp, nil
}

// Delete removes a review written by the actor, or any review for admins.
func (s *ReviewService) Delete(ctx context.Context, actor Actor, id string) error {
	reviewID, err := parseID(id, "review id")
	if err != nil {
		return err
	}
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	author := review.UserID
	if !actor.CanModify(&author) {
		return ErrForbidden
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

// MarkHelpful increments the helpful counter of a review.
func (s *ReviewService) MarkHelpful(ctx context.Context, id string) (*dto.ReviewResponse, error) {
	reviewID, err := parseID(id, "review id")
	if err != nil {
		return nil, err
	}
	review, err := s.reviews.IncrementHelpful(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	resp := dto.NewReviewResponse(*review)
	return &resp, nil
}

// SetHidden hides or unhides a review; hidden reviews drop out of listings and averages.
func (s *ReviewService) SetHidden(ctx context.Context, id string, hidden bool) error {
	reviewID, err := parseID(id, "review id")
	if err != nil {
		return err
	}
	if err := s.reviews.SetHidden(ctx, reviewID, hidden); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
