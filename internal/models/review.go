package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_service_user;not null" json:"serviceId"`
	User      string    `gorm:"size:100;uniqueIndex:idx_reviews_service_user;not null" json:"user"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Date      time.Time `gorm:"not null" json:"date"`
}
