package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/repository"
)

// CategoryService exposes the category catalogue.
type CategoryService struct {
	repo repository.CategoriesRepository
}

// NewCategoryService builds a CategoryService.
func NewCategoryService(repo repository.CategoriesRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns the active categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.repo.ListActive(ctx)
}

// GetBySlug returns a single category.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, invalid("slug is required")
	}
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}
