package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:30;not null" json:"phone"`
	Address      string    `gorm:"size:255" json:"address"`
	ProfilePhoto string    `gorm:"size:500" json:"profilePhoto"`

	BookedServices []Service `gorm:"many2many:customer_booked_services;" json:"bookedServices,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerBookedService is the customer's index of services they booked at
// least once. Rows are appended on booking and never removed.
type CustomerBookedService struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (CustomerBookedService) TableName() string {
	return "customer_booked_services"
}
