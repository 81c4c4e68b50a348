package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/rating"
	"github.com/fixpoints/fixpoints-api/internal/repository"
)

// FavoriteService manages the services a user bookmarked.
type FavoriteService struct {
	favorites repository.FavoritesRepository
	services  repository.ServicesRepository
}

// NewFavoriteService builds a FavoriteService.
func NewFavoriteService(favorites repository.FavoritesRepository, services repository.ServicesRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, services: services}
}

// List returns the user's favorites newest first with a service summary each.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]dto.FavoriteResponse, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		resp := dto.FavoriteResponse{
			ID:        f.ID.String(),
			ServiceID: f.ServiceID.String(),
			CreatedAt: f.CreatedAt,
		}
		if f.Service != nil {
			resp.Service = summarizeService(*f.Service)
		}
		out = append(out, resp)
	}
	return out, nil
}

// Add bookmarks a service. Bookmarking the same service twice fails with
// ErrAlreadyFavorited and leaves a single row.
func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, serviceID string) (*dto.FavoriteResponse, error) {
	if strings.TrimSpace(serviceID) == "" {
		return nil, invalid("service id is required")
	}
	id, err := parseID(strings.TrimSpace(serviceID), "service id")
	if err != nil {
		return nil, err
	}

	exists, err := s.services.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrServiceNotFound
	}

	favorite := &entity.Favorite{UserID: userID, ServiceID: id}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	return &dto.FavoriteResponse{
		ID:        favorite.ID.String(),
		ServiceID: favorite.ServiceID.String(),
		CreatedAt: favorite.CreatedAt,
	}, nil
}

// Remove deletes a bookmark; removing a missing bookmark succeeds.
func (s *FavoriteService) Remove(ctx context.Context, userID uuid.UUID, serviceID string) error {
	if strings.TrimSpace(serviceID) == "" {
		return invalid("serviceId is required")
	}
	id, err := parseID(strings.TrimSpace(serviceID), "serviceId")
	if err != nil {
		return err
	}
	return s.favorites.Delete(ctx, userID, id)
}

func summarizeService(svc entity.Service) *dto.FavoriteService {
	summary := rating.Summarize(svc.Ratings())
	out := &dto.FavoriteService{
		ID:            svc.ID.String(),
		Name:          svc.Name,
		Description:   svc.Description,
		City:          svc.City,
		AverageRating: summary.Average,
		TotalReviews:  summary.Count,
		Image:         dto.DefaultServiceImage,
		IsVerified:    svc.IsVerified,
	}
	if svc.Category != nil {
		out.Category = svc.Category.Name
	}
	if len(svc.Images) > 0 {
		out.Image = svc.Images[0].URL
	}
	if svc.PriceRange != nil {
		pr := string(*svc.PriceRange)
		out.PriceRange = &pr
	}
	return out
}
