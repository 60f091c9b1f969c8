package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Availability struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"providerId"`

	DayOfWeek int    `gorm:"not null" json:"dayOfWeek"`
	StartTime string `gorm:"size:5;not null" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`
	IsActive  bool   `gorm:"not null" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Availability) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
