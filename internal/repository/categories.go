package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// CategoriesRepository exposes read access to service categories.
type CategoriesRepository interface {
	ListActive(ctx context.Context) ([]entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
}

// GormCategoriesRepository implements CategoriesRepository with gorm.
type GormCategoriesRepository struct {
	db *gorm.DB
}

// NewGormCategoriesRepository instantiates a categories repository.
func NewGormCategoriesRepository(db *gorm.DB) *GormCategoriesRepository {
	return &GormCategoriesRepository{db: db}
}

// ListActive returns active categories ordered by name.
func (r *GormCategoriesRepository) ListActive(ctx context.Context) ([]entity.Category, error) {
	categories := make([]entity.Category, 0)
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// FindBySlug fetches a category by its slug.
func (r *GormCategoriesRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).Take(&category).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query category by slug: %w", err)
	}
	return &category, nil
}

// FindByID fetches a category by identifier.
func (r *GormCategoriesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&category).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query category by id: %w", err)
	}
	return &category, nil
}
