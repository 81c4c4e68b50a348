package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite bookmarks a service for a user. Unique per (user, service).
type Favorite struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_service"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ServiceID uuid.UUID `json:"service_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_favorites_user_service"`
	Service   *Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Favorite) BeforeCreate(*gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
