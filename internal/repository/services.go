package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fixpoints/fixpoints-api/internal/dto"
	"github.com/fixpoints/fixpoints-api/internal/entity"
)

const importBatchSize = 100

// ServicesRepository declares persistence operations for catalogue services.
type ServicesRepository interface {
	List(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, service *entity.Service) error
	CreateBatch(ctx context.Context, services []entity.Service) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

// GormServicesRepository implements ServicesRepository with gorm.
type GormServicesRepository struct {
	db *gorm.DB
}

// NewGormServicesRepository instantiates a services repository.
func NewGormServicesRepository(db *gorm.DB) *GormServicesRepository {
	return &GormServicesRepository{db: db}
}

// List returns one page of active services matching the filter, newest first,
// together with the total number of matches. Visible review ratings are
// preloaded so callers can compute rating summaries.
func (r *GormServicesRepository) List(ctx context.Context, filter dto.ServiceFilter) ([]entity.Service, int64, error) {
	scope := serviceFilterScope(filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Service{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	services := make([]entity.Service, 0)
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Category").
		Preload("Reviews", visibleRatings).
		Order("services.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&services).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	return services, total, nil
}

// FindByID loads a service with its category, ordered images and visible ratings.
func (r *GormServicesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Reviews", visibleRatings).
		Where("id = ?", id).
		Take(&service).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query service by id: %w", err)
	}
	return &service, nil
}

// Exists reports whether a service with the given id is stored.
func (r *GormServicesRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Service{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check service: %w", err)
	}
	return count > 0, nil
}

// Create inserts a service.
func (r *GormServicesRepository) Create(ctx context.Context, service *entity.Service) error {
	if err := r.db.WithContext(ctx).Omit("Category", "Owner").Create(service).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// CreateBatch inserts services in a single transaction and returns the number stored.
func (r *GormServicesRepository) CreateBatch(ctx context.Context, services []entity.Service) (int, error) {
	if len(services) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Category", "Owner").CreateInBatches(services, importBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("bulk insert services: %w", err)
	}
	return len(services), nil
}

// Delete removes a service; reviews, images and favorites cascade.
func (r *GormServicesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Service{})
	if res.Error != nil {
		return fmt.Errorf("delete service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetVerified toggles the verified badge of a service.
func (r *GormServicesRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	res := r.db.WithContext(ctx).Model(&entity.Service{}).Where("id = ?", id).Update("is_verified", verified)
	if res.Error != nil {
		return fmt.Errorf("verify service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func serviceFilterScope(filter dto.ServiceFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("services.is_active = ?", true)

		if slug := strings.TrimSpace(filter.Category); slug != "" && slug != "all" {
			db = db.Joins("JOIN categories ON categories.id = services.category_id").
				Where("categories.slug = ?", slug)
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := likePattern(search)
			db = db.Where("(services.name ILIKE ? OR services.description ILIKE ?)", pattern, pattern)
		}
		if location := strings.TrimSpace(filter.Location); location != "" {
			pattern := likePattern(location)
			db = db.Where("(services.address ILIKE ? OR services.city ILIKE ?)", pattern, pattern)
		}
		return db
	}
}

func visibleRatings(db *gorm.DB) *gorm.DB {
	return db.Select("id", "service_id", "rating").Where("is_hidden = ?", false)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
