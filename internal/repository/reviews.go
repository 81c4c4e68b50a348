package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// ReviewsRepository declares persistence operations for reviews.
type ReviewsRepository interface {
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]entity.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Create(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementHelpful(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error
}

// GormReviewsRepository implements ReviewsRepository with gorm.
type GormReviewsRepository struct {
	db *gorm.DB
}

// NewGormReviewsRepository instantiates a reviews repository.
func NewGormReviewsRepository(db *gorm.DB) *GormReviewsRepository {
	return &GormReviewsRepository{db: db}
}

// ListByService returns the visible reviews of a service, newest first, with authors.
func (r *GormReviewsRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]entity.Review, error) {
	reviews := make([]entity.Review, 0)
	err := r.db.WithContext(ctx).
		Preload("User", reviewAuthor).
		Where("service_id = ? AND is_hidden = ?", serviceID, false).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// FindByID fetches a review with its author.
func (r *GormReviewsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	if err := r.db.WithContext(ctx).Preload("User", reviewAuthor).Where("id = ?", id).Take(&review).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query review: %w", err)
	}
	return &review, nil
}

// Create inserts a review. A second review by the same user for the same
// service violates idx_reviews_user_service and yields ErrDuplicate.
func (r *GormReviewsRepository) Create(ctx context.Context, review *entity.Review) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// Delete removes a review.
func (r *GormReviewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Review{})
	if res.Error != nil {
		return fmt.Errorf("delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementHelpful atomically bumps the helpful counter and returns the review.
func (r *GormReviewsRepository) IncrementHelpful(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if res.Error != nil {
		return nil, fmt.Errorf("increment helpful: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// SetHidden hides or unhides a review.
func (r *GormReviewsRepository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	res := r.db.WithContext(ctx).Model(&entity.Review{}).Where("id = ?", id).Update("is_hidden", hidden)
	if res.Error != nil {
		return fmt.Errorf("update review visibility: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func reviewAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}
