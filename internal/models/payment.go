package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"bookingId"`

	OrderID          string `gorm:"size:64;index" json:"razorpayOrderId"`
	GatewayPaymentID string `gorm:"size:64" json:"razorpayPaymentId"`
	Signature        string `gorm:"size:128" json:"-"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:3;not null" json:"currency"`
	Status   string  `gorm:"size:20;not null;index" json:"status"`

	PaidAt *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
