package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves a service for one calendar date. The customer fields are
// copied at booking time and are not kept in sync with the customer record.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	CustomerName  string    `gorm:"size:100;not null" json:"customerName"`
	CustomerEmail string    `gorm:"size:100;not null" json:"customerEmail"`
	CustomerPhone string    `gorm:"size:30;not null" json:"customerPhone"`

	BookedForDate string    `gorm:"size:10;not null" json:"bookedForDate"` // YYYY-MM-DD
	DateBooked    time.Time `gorm:"not null" json:"dateBooked"`
	Status        string    `gorm:"size:20;default:'pending';not null" json:"status"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
