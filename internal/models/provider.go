package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceProvider struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	User   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	Specialization string  `gorm:"size:120;not null" json:"specialization"`
	HourlyRate     float64 `gorm:"not null" json:"hourlyRate"`
	Experience     int     `json:"experience"`
	Bio            string  `gorm:"type:text" json:"bio"`
	Address        string  `gorm:"size:255" json:"address"`
	City           string  `gorm:"size:100;index" json:"city"`
	State          string  `gorm:"size:100" json:"state"`
	Pincode        string  `gorm:"size:20" json:"pincode"`

	IsApproved  bool `gorm:"not null;index" json:"isApproved"`
	IsAvailable bool `gorm:"not null" json:"isAvailable"`

	// Derived from reviews, written only by the review aggregate.
	Rating       float64 `gorm:"not null;default:0" json:"rating"`
	TotalReviews int     `gorm:"not null;default:0" json:"totalReviews"`

	Availability []Availability `gorm:"foreignKey:ProviderID" json:"availability,omitempty"`
	Reviews      []Review       `gorm:"foreignKey:ProviderID" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *ServiceProvider) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
