package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/homeservices/internal/domain/review"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type ListProviderReviews struct {
	repo domain.Repository
}

func NewListProviderReviews(repo domain.Repository) *ListProviderReviews {
	return &ListProviderReviews{repo: repo}
}

// Execute returns the provider's reviews newest first. limit <= 0 means all.
func (uc *ListProviderReviews) Execute(
	ctx context.Context,
	providerID uuid.UUID,
	limit int,
) ([]models.Review, error) {
	return uc.repo.ListByProvider(ctx, providerID, limit)
}

type GetBookingReview struct {
	repo domain.Repository
}

func NewGetBookingReview(repo domain.Repository) *GetBookingReview {
	return &GetBookingReview{repo: repo}
}

// Execute returns nil without error when the booking has no review yet.
func (uc *GetBookingReview) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
) (*models.Review, error) {

	r, err := uc.repo.GetByBooking(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return r, err
}
