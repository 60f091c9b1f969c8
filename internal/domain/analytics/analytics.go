package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/models"
)

type Summary struct {
	TotalUsers        int64   `json:"totalUsers"`
	TotalProviders    int64   `json:"totalProviders"`
	ApprovedProviders int64   `json:"approvedProviders"`
	PendingProviders  int64   `json:"pendingProviders"`
	TotalBookings     int64   `json:"totalBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ServiceCount struct {
	ServiceID   uuid.UUID `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Bookings    int64     `gorm:"column:booking_count" json:"bookings"`
}

type ProviderStats struct {
	TotalBookings     int64   `json:"totalBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalEarnings     float64 `json:"totalEarnings"`
	Rating            float64 `json:"rating"`
	TotalReviews      int     `json:"totalReviews"`
}

// Repository is read only.
type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
	RecentBookings(ctx context.Context, limit int) ([]models.Booking, error)
	BookingsByStatus(ctx context.Context) ([]StatusCount, error)
	PopularServices(ctx context.Context, limit int) ([]ServiceCount, error)

	ProviderByUser(ctx context.Context, userID uuid.UUID) (*models.ServiceProvider, error)
	ProviderStats(ctx context.Context, p *models.ServiceProvider) (*ProviderStats, error)
	ProviderRecentBookings(ctx context.Context, providerID uuid.UUID, limit int) ([]models.Booking, error)
}
