package booking

import (
	"time"

	"github.com/BruksfildServices01/homeservices/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func ChangeStatus(b *models.Booking, next Status, strict bool, now time.Time) error {
	if err := CanTransition(Status(b.Status), next, strict); err != nil {
		return err
	}

	b.Status = string(next)
	switch next {
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
	return nil
}

// TotalPrice is fixed at creation and never follows later rate changes.
func TotalPrice(hourlyRate float64, hours int) float64 {
	return hourlyRate * float64(hours)
}
