package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/audit"
	"github.com/BruksfildServices01/homeservices/internal/auth"
	domain "github.com/BruksfildServices01/homeservices/internal/domain/booking"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute cancels a booking. Completed payments are left as they are; there
// is no refund flow.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	caller auth.Identity,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "booking_not_found", "Booking not found")
	}

	if !canCancel(b, caller) {
		return nil, httperr.ErrForbidden("forbidden", "Unauthorized")
	}

	if err := domain.Cancel(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(caller.UserID),
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: audit.Ref(b.ID),
	})

	return b, nil
}
