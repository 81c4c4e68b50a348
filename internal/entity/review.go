package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a service. One per (user, service).
type Review struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Rating       int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Title        *string   `json:"title,omitempty"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_service"`
	User         *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ServiceID    uuid.UUID `json:"service_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_user_service"`
	IsVerified   bool      `json:"is_verified" gorm:"not null;default:false"`
	IsHidden     bool      `json:"is_hidden" gorm:"not null;default:false"`
	HelpfulCount int       `json:"helpful_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// ValidRating reports whether value lies within [MinRating, MaxRating].
func ValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}
