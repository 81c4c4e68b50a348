package database

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// Seed credentials for local development.
const (
	SeedUserEmail    = "test@fixpoints.cz"
	SeedUserPassword = "password123"
)

type seedCategory struct {
	name, slug, description, icon, color string
}

var seedCategories = []seedCategory{
	{"Autoopravna", "autoopravna", "Kompletní opravy a servis vozidel", "🔧", "#3B82F6"},
	{"Výměna oleje", "vymena-oleje", "Rychlá výměna motorového oleje a filtrů", "🛢️", "#F59E0B"},
	{"Mytí auta", "myti-auta", "Ruční i automatické mytí vozidel", "🚿", "#06B6D4"},
	{"Pneuservis", "pneuservis", "Přezouvání, vyvažování a opravy pneumatik", "🛞", "#6B7280"},
	{"Diagnostika", "diagnostika", "Počítačová diagnostika a hledání závad", "💻", "#8B5CF6"},
	{"Detailing", "detailing", "Profesionální čištění a ochrana laku", "✨", "#EC4899"},
	{"Klimatizace", "klimatizace", "Plnění, čištění a opravy klimatizace", "❄️", "#0EA5E9"},
	{"Brzdy", "brzdy", "Výměna destiček, kotoučů a brzdové kapaliny", "🛑", "#EF4444"},
}

// SeedCategories returns the slugs of the categories inserted by Seed.
func SeedCategories() []string {
	slugs := make([]string, 0, len(seedCategories))
	for _, c := range seedCategories {
		slugs = append(slugs, c.slug)
	}
	return slugs
}

// Seed inserts the default categories and a development user. Existing rows
// are left untouched, so running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range seedCategories {
			category := entity.Category{
				Name:        c.name,
				Slug:        c.slug,
				Description: strPtr(c.description),
				Icon:        strPtr(c.icon),
				Color:       strPtr(c.color),
				IsActive:    true,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoNothing: true,
			}).Create(&category).Error
			if err != nil {
				return fmt.Errorf("seed category %s: %w", c.slug, err)
			}
		}

		var existing entity.User
		err := tx.Where("email = ?", SeedUserEmail).Take(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup seed user: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(SeedUserPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		user := entity.User{
			Email:        SeedUserEmail,
			Name:         strPtr("Test User"),
			PasswordHash: strPtr(string(hash)),
			Provider:     "email",
			Role:         entity.RoleUser,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		return nil
	})
}

func strPtr(s string) *string {
	return &s
}
