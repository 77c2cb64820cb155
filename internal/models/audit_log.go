package models

import "time"

// AuditLog is one recorded action. Metadata holds the event payload as JSON.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorID   string `gorm:"size:36;index" json:"actorId"`
	ActorRole string `gorm:"size:20" json:"actorRole"`
	Action    string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50;index:idx_audit_entity" json:"entity"`
	EntityID string `gorm:"size:36;index:idx_audit_entity" json:"entityId"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
}
