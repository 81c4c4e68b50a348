package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceRange is the coarse price indicator shown on a service card.
type PriceRange string

const (
	PriceBudget   PriceRange = "$"
	PriceModerate PriceRange = "$$"
	PriceHigh     PriceRange = "$$$"
	PricePremium  PriceRange = "$$$$"
)

// Valid reports whether p is one of the known price ranges.
func (p PriceRange) Valid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceHigh, PricePremium:
		return true
	}
	return false
}

// DayHours describes opening hours for a single weekday; times are "HH:MM".
type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// OpeningHours is stored as a JSON document on the service row.
type OpeningHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// Service is a business listing persisted in FixPoints' own database.
type Service struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string        `json:"name" gorm:"not null"`
	Description  string        `json:"description" gorm:"type:text;not null"`
	CategoryID   uuid.UUID     `json:"category_id" gorm:"type:uuid;not null;index"`
	Category     *Category     `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Address      string        `json:"address" gorm:"not null"`
	City         string        `json:"city" gorm:"not null;index"`
	State        string        `json:"state" gorm:"not null"`
	ZipCode      *string       `json:"zip_code,omitempty"`
	Phone        *string       `json:"phone,omitempty"`
	Email        *string       `json:"email,omitempty"`
	Website      *string       `json:"website,omitempty"`
	Latitude     *float64      `json:"latitude,omitempty"`
	Longitude    *float64      `json:"longitude,omitempty"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty" gorm:"type:jsonb;serializer:json"`
	PriceRange   *PriceRange   `json:"price_range,omitempty" gorm:"type:varchar(4)"`
	IsVerified   bool          `json:"is_verified" gorm:"not null;default:false"`
	IsActive     bool          `json:"is_active" gorm:"not null;default:true"`
	OwnerID      *uuid.UUID    `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	Owner        *User         `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Reviews   []Review       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Images    []ServiceImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Favorites []Favorite     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// Ratings returns the rating values of the loaded reviews.
func (s Service) Ratings() []int {
	ratings := make([]int, 0, len(s.Reviews))
	for _, r := range s.Reviews {
		ratings = append(ratings, r.Rating)
	}
	return ratings
}

// ServiceImage is a photo attached to a service; Position orders the gallery.
type ServiceImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	URL       string    `json:"url" gorm:"not null"`
	Alt       *string   `json:"alt,omitempty"`
	Position  int       `json:"order" gorm:"not null;default:0"`
	ServiceID uuid.UUID `json:"service_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *ServiceImage) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
