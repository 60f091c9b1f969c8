package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user,omitempty"`

	ProviderID uuid.UUID        `gorm:"type:uuid;not null;index" json:"providerId"`
	Provider   *ServiceProvider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"provider,omitempty"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"serviceId"`
	Service   *Service  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	BookingDate time.Time `gorm:"not null" json:"bookingDate"`
	StartTime   string    `gorm:"size:5;not null" json:"startTime"`
	Hours       int       `gorm:"not null" json:"hours"`

	// Snapshot of provider.HourlyRate * Hours at creation.
	TotalPrice float64 `gorm:"not null" json:"totalPrice"`

	Status        string `gorm:"size:20;not null;index" json:"status"`
	PaymentStatus string `gorm:"size:20;not null" json:"paymentStatus"`

	Address string `gorm:"size:255;not null" json:"address"`
	Notes   string `gorm:"type:text" json:"notes"`

	Payment *Payment `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
	Review  *Review  `gorm:"foreignKey:BookingID" json:"review,omitempty"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
