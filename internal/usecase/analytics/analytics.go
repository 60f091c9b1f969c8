package analytics

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/homeservices/internal/domain/analytics"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

const (
	recentLimit  = 10
	popularLimit = 5
)

// ======================================================
// Admin
// ======================================================

type PlatformOutput struct {
	Summary          *domain.Summary       `json:"summary"`
	RecentBookings   []models.Booking      `json:"recentBookings"`
	BookingsByStatus []domain.StatusCount  `json:"bookingsByStatus"`
	PopularServices  []domain.ServiceCount `json:"popularServices"`
}

type PlatformAnalytics struct {
	repo domain.Repository
}

func NewPlatformAnalytics(repo domain.Repository) *PlatformAnalytics {
	return &PlatformAnalytics{repo: repo}
}

func (uc *PlatformAnalytics) Execute(ctx context.Context) (*PlatformOutput, error) {
	summary, err := uc.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.repo.RecentBookings(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	byStatus, err := uc.repo.BookingsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := uc.repo.PopularServices(ctx, popularLimit)
	if err != nil {
		return nil, err
	}

	return &PlatformOutput{
		Summary:          summary,
		RecentBookings:   recent,
		BookingsByStatus: byStatus,
		PopularServices:  popular,
	}, nil
}

// ======================================================
// Provider
// ======================================================

type DashboardOutput struct {
	Stats          *domain.ProviderStats `json:"stats"`
	RecentBookings []models.Booking      `json:"recentBookings"`
}

type ProviderDashboard struct {
	repo domain.Repository
}

func NewProviderDashboard(repo domain.Repository) *ProviderDashboard {
	return &ProviderDashboard{repo: repo}
}

func (uc *ProviderDashboard) Execute(ctx context.Context, userID uuid.UUID) (*DashboardOutput, error) {
	p, err := uc.repo.ProviderByUser(ctx, userID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "provider_not_found", "Provider profile not found")
	}

	stats, err := uc.repo.ProviderStats(ctx, p)
	if err != nil {
		return nil, err
	}
	recent, err := uc.repo.ProviderRecentBookings(ctx, p.ID, recentLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardOutput{Stats: stats, RecentBookings: recent}, nil
}
