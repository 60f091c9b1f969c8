package booking

import (
	"strings"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return st, true
	}
	return "", false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Payment Status (booking side)
// ===============================

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// ===============================
// Validations
// ===============================

func InitialStatus() Status {
	return StatusPending
}

// CanCancel rejects bookings that already reached a terminal state.
func CanCancel(current Status) error {
	if current.Terminal() {
		return httperr.ErrInvalidTransition(
			"invalid_state",
			"Cannot cancel "+strings.ToLower(string(current))+" booking",
		)
	}
	return nil
}

// strictTransitions is the table applied when status updates are checked.
var strictTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition validates a provider/admin status change. When strict is
// false every known status is accepted, which is the historical behaviour
// of the endpoint.
func CanTransition(current, next Status, strict bool) error {
	if !strict {
		return nil
	}
	for _, allowed := range strictTransitions[current] {
		if allowed == next {
			return nil
		}
	}
	return httperr.ErrInvalidTransition(
		"invalid_transition",
		"Cannot move booking from "+string(current)+" to "+string(next),
	)
}
