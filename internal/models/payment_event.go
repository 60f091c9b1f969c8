package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentEvent records every gateway webhook delivery that was applied.
// The unique EventID makes redelivery a no-op.
type PaymentEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EventID          string         `gorm:"size:128;uniqueIndex;not null" json:"eventId"`
	Event            string         `gorm:"size:64;not null" json:"event"`
	OrderID          string         `gorm:"size:64;index" json:"orderId"`
	GatewayPaymentID string         `gorm:"size:64" json:"paymentId"`
	Payload          datatypes.JSON `json:"payload"`

	CreatedAt time.Time `json:"createdAt"`
}

func (e *PaymentEvent) BeforeCreate(*gorm.DB) error {
	ensureID(&e.ID)
	return nil
}
