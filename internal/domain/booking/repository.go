package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/models"
)

type ListFilter struct {
	UserID     *uuid.UUID
	ProviderID *uuid.UUID
	Status     string
	Offset     int
	Limit      int
}

type Repository interface {
	// -------- Catalog / directory --------
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	GetProvider(ctx context.Context, id uuid.UUID) (*models.ServiceProvider, error)
	GetProviderByUser(ctx context.Context, userID uuid.UUID) (*models.ServiceProvider, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetBookingDetailed(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, int64, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error
}
