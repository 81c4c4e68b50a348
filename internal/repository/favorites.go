package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// FavoritesRepository declares persistence operations for favorites.
type FavoritesRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error)
	Create(ctx context.Context, favorite *entity.Favorite) error
	Delete(ctx context.Context, userID, serviceID uuid.UUID) error
}

// GormFavoritesRepository implements FavoritesRepository with gorm.
type GormFavoritesRepository struct {
	db *gorm.DB
}

// NewGormFavoritesRepository instantiates a favorites repository.
func NewGormFavoritesRepository(db *gorm.DB) *GormFavoritesRepository {
	return &GormFavoritesRepository{db: db}
}

// ListByUser returns a user's favorites newest first, each with the service,
// its category, images and visible ratings.
func (r *GormFavoritesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	favorites := make([]entity.Favorite, 0)
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Service.Category").
		Preload("Service.Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Service.Reviews", visibleRatings).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// Create inserts a favorite; an existing (user, service) pair yields ErrDuplicate.
func (r *GormFavoritesRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	if err := r.db.WithContext(ctx).Omit("Service", "User").Create(favorite).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// Delete removes the favorite for the pair. Deleting a missing pair is not an error.
func (r *GormFavoritesRepository) Delete(ctx context.Context, userID, serviceID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND service_id = ?", userID, serviceID).
		Delete(&entity.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}
