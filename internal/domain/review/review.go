package review

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Aggregate is the provider rating derived from its full review set.
type Aggregate struct {
	Rating       float64
	TotalReviews int
}

// RoundRating rounds a mean to one decimal place, half away from zero.
func RoundRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}

// Compute derives the aggregate from a list of ratings. The store computes
// the same value in SQL; this is the reference used by tests and by callers
// that already hold the ratings.
func Compute(ratings []int) Aggregate {
	if len(ratings) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return Aggregate{
		Rating:       RoundRating(float64(sum) / float64(len(ratings))),
		TotalReviews: len(ratings),
	}
}

type Repository interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)

	// CreateAndAggregate inserts the review and recomputes the provider
	// rating and count atomically.
	CreateAndAggregate(ctx context.Context, r *models.Review) (*Aggregate, error)

	ListByProvider(ctx context.Context, providerID uuid.UUID, limit int) ([]models.Review, error)
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Review, error)
}
