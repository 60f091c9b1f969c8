package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/auth"
	domain "github.com/BruksfildServices01/homeservices/internal/domain/booking"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	caller auth.Identity,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingDetailed(ctx, bookingID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "booking_not_found", "Booking not found")
	}

	if !canView(b, caller) {
		return nil, httperr.ErrForbidden("forbidden", "Unauthorized access")
	}

	return b, nil
}
