package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceCategory string

const (
	CategoryMaid        ServiceCategory = "MAID"
	CategoryCook        ServiceCategory = "COOK"
	CategoryElectrician ServiceCategory = "ELECTRICIAN"
	CategoryPlumber     ServiceCategory = "PLUMBER"
	CategoryCleaning    ServiceCategory = "CLEANING"
)

func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryMaid, CategoryCook, CategoryElectrician, CategoryPlumber, CategoryCleaning:
		return true
	}
	return false
}

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    ServiceCategory `gorm:"size:20;not null;index" json:"category"`
	BasePrice   float64         `gorm:"not null" json:"basePrice"`
	ImageURL    string          `gorm:"size:512" json:"imageUrl"`
	IsActive    bool            `gorm:"not null;index" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
