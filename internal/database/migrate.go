package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&entity.User{},
		&entity.Category{},
		&entity.Service{},
		&entity.ServiceImage{},
		&entity.Review{},
		&entity.Favorite{},
	}
}

// Migrate creates or updates the schema for all persisted entities.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
