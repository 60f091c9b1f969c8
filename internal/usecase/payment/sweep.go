package payment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/homeservices/internal/domain/payment"
)

// SweepStale fails payments left PENDING for longer than ttl. Bookings keep
// their status; only their paymentStatus follows.
type SweepStale struct {
	repo domain.Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewSweepStale(repo domain.Repository, ttl time.Duration) *SweepStale {
	return &SweepStale{repo: repo, ttl: ttl, now: time.Now}
}

func (uc *SweepStale) Execute(ctx context.Context) (int64, error) {
	return uc.repo.FailStalePayments(ctx, uc.now().Add(-uc.ttl))
}
