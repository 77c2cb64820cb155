package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryVenue         = "venue"
	CategoryCatering      = "catering"
	CategoryDecor         = "decor"
	CategoryEntertainment = "entertainment"

	FoodTypeVeg    = "veg"
	FoodTypeNonVeg = "nonveg"
	FoodTypeBoth   = "both"
)

// Service is owned by its vendor through VendorUsername. Deleting it leaves
// its bookings in place.
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name           string  `gorm:"size:150;not null" json:"name"`
	Provider       string  `gorm:"size:150;not null" json:"provider"`
	VendorUsername string  `gorm:"size:100;index;not null" json:"vendorUsername"`
	Price          float64 `gorm:"not null" json:"price"`
	Category       string  `gorm:"size:30;index;not null" json:"category"`
	FoodType       string  `gorm:"size:10;default:'both'" json:"foodType"`

	Images       []string `gorm:"serializer:json;type:text" json:"images"`
	Description  string   `gorm:"type:text;not null" json:"description"`
	Address      string   `gorm:"size:255;not null" json:"address"`
	BlockedDates []string `gorm:"serializer:json;type:text" json:"blockedDates"`

	Reviews  []Review  `gorm:"foreignKey:ServiceID" json:"reviews"`
	Bookings []Booking `gorm:"foreignKey:ServiceID" json:"bookings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryVenue, CategoryCatering, CategoryDecor, CategoryEntertainment:
		return true
	}
	return false
}

func ValidFoodType(f string) bool {
	switch f {
	case FoodTypeVeg, FoodTypeNonVeg, FoodTypeBoth:
		return true
	}
	return false
}

// AverageRating returns 0 for a service without reviews.
func (s *Service) AverageRating() float64 {
	if len(s.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range s.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(s.Reviews))
}
