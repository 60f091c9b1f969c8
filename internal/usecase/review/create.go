package review

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/audit"
	"github.com/BruksfildServices01/homeservices/internal/domain/booking"
	domain "github.com/BruksfildServices01/homeservices/internal/domain/review"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type CreateReviewInput struct {
	CustomerID uuid.UUID
	BookingID  uuid.UUID
	Rating     int
	Comment    string
}

type CreateReviewOutput struct {
	Review    *models.Review    `json:"review"`
	Aggregate *domain.Aggregate `json:"-"`
}

type CreateReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateReview {
	return &CreateReview{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*CreateReviewOutput, error) {

	if !domain.ValidRating(in.Rating) {
		return nil, httperr.ErrValidation("invalid_rating", "rating must be between 1 and 5")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "booking_not_found", "Booking not found")
	}
	if b.UserID != in.CustomerID {
		return nil, httperr.ErrForbidden("forbidden", "Unauthorized")
	}
	if b.Status != string(booking.StatusCompleted) {
		return nil, httperr.ErrInvalidTransition("booking_not_completed", "Can only review completed bookings")
	}

	exists, err := uc.repo.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrConflict("review_exists", "Review already submitted for this booking")
	}

	r := &models.Review{
		BookingID:  b.ID,
		UserID:     in.CustomerID,
		ProviderID: b.ProviderID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}

	// the unique index on booking_id still catches a concurrent duplicate
	agg, err := uc.repo.CreateAndAggregate(ctx, r)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(in.CustomerID),
		Action:   "review_created",
		Entity:   "review",
		EntityID: audit.Ref(r.ID),
		Metadata: map[string]any{"providerId": b.ProviderID, "rating": r.Rating, "providerRating": agg.Rating},
	})

	return &CreateReviewOutput{Review: r, Aggregate: agg}, nil
}
