package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VendorStatusPending  = "pending"
	VendorStatusAccepted = "accepted"
	VendorStatusRejected = "rejected"
)

type Vendor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	BusinessName string    `gorm:"size:150;not null" json:"businessName"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:30;not null" json:"phone"`
	ProfilePhoto string    `gorm:"size:500" json:"profilePhoto"`
	About        string    `gorm:"type:text" json:"about"`
	Categories   []string  `gorm:"serializer:json;type:text" json:"categories"`
	Status       string    `gorm:"size:20;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
