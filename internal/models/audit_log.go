package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID *uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	Action string     `gorm:"size:50;not null" json:"action"`

	Entity   string         `gorm:"size:50" json:"entity"`
	EntityID *uuid.UUID     `gorm:"type:uuid" json:"entityId"`
	Metadata datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
}

func (l *AuditLog) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}
