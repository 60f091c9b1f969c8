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

type UpdateBookingStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	strict bool
	now    func() time.Time
}

// NewUpdateBookingStatus builds the provider/admin status update. With
// strict=false any known status is accepted regardless of the current one.
func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	strict bool,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:   repo,
		audit:  audit,
		strict: strict,
		now:    time.Now,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	caller auth.Identity,
	newStatus string,
) (*models.Booking, error) {

	next, ok := domain.ParseStatus(newStatus)
	if !ok {
		return nil, httperr.ErrValidation("invalid_status", "status must be one of PENDING, CONFIRMED, IN_PROGRESS, COMPLETED, CANCELLED")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "booking_not_found", "Booking not found")
	}

	if !canUpdateStatus(b, caller) {
		return nil, httperr.ErrForbidden("forbidden", "Unauthorized")
	}

	previous := b.Status
	if err := domain.ChangeStatus(b, next, uc.strict, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(caller.UserID),
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: audit.Ref(b.ID),
		Metadata: map[string]any{"from": previous, "to": b.Status},
	})

	return b, nil
}
