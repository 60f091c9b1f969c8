package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/audit"
	domain "github.com/BruksfildServices01/homeservices/internal/domain/booking"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uuid.UUID
	ServiceID  uuid.UUID
	ProviderID uuid.UUID

	Date      string
	StartTime string
	Hours     int

	Address string
	Notes   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if !domain.ValidHours(in.Hours) {
		return nil, httperr.ErrValidation("invalid_hours", "hours must be between 1 and 12")
	}
	if !domain.ValidStartTime(in.StartTime) {
		return nil, httperr.ErrValidation("invalid_start_time", "startTime must be in HH:MM format")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, httperr.ErrValidation("invalid_address", "address is required")
	}
	date, err := domain.ParseDate(in.Date, uc.loc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Service and provider
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "service_not_found", "Service or provider not found")
	}
	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "provider_not_found", "Service or provider not found")
	}

	if !service.IsActive {
		return nil, httperr.New(httperr.KindUnavailable, "service_unavailable", "Service is not available")
	}
	if !provider.IsApproved || !provider.IsAvailable {
		return nil, httperr.New(httperr.KindUnavailable, "provider_unavailable", "Provider is not available")
	}

	// --------------------------------------------------
	// 3. Persist with a price snapshot
	// --------------------------------------------------
	b := &models.Booking{
		UserID:        in.CustomerID,
		ProviderID:    provider.ID,
		ServiceID:     service.ID,
		BookingDate:   date,
		StartTime:     in.StartTime,
		Hours:         in.Hours,
		TotalPrice:    domain.TotalPrice(provider.HourlyRate, in.Hours),
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentPending),
		Address:       strings.TrimSpace(in.Address),
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(in.CustomerID),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: audit.Ref(b.ID),
		Metadata: map[string]any{"totalPrice": b.TotalPrice, "hours": b.Hours},
	})

	return uc.repo.GetBookingDetailed(ctx, b.ID)
}
