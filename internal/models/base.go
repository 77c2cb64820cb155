package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (s *Service) BeforeCreate(tx *gorm.DB) error  { ensureID(&s.ID); return nil }
func (b *Booking) BeforeCreate(tx *gorm.DB) error  { ensureID(&b.ID); return nil }
func (r *Review) BeforeCreate(tx *gorm.DB) error   { ensureID(&r.ID); return nil }
func (c *Customer) BeforeCreate(tx *gorm.DB) error { ensureID(&c.ID); return nil }
func (v *Vendor) BeforeCreate(tx *gorm.DB) error   { ensureID(&v.ID); return nil }
func (a *Admin) BeforeCreate(tx *gorm.DB) error    { ensureID(&a.ID); return nil }
