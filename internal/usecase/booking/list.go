package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/auth"
	domain "github.com/BruksfildServices01/homeservices/internal/domain/booking"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type ListBookingsInput struct {
	Caller auth.Identity
	Status string
	Offset int
	Limit  int
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute scopes the listing by role: customers see their own bookings,
// providers the bookings against their profile, admins everything.
func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) ([]models.Booking, int64, error) {

	f := domain.ListFilter{
		Status: in.Status,
		Offset: in.Offset,
		Limit:  in.Limit,
	}

	switch in.Caller.Role {
	case role.Customer:
		f.UserID = &in.Caller.UserID
	case role.Provider:
		p, err := uc.repo.GetProviderByUser(ctx, in.Caller.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Booking{}, 0, nil
		}
		if err != nil {
			return nil, 0, err
		}
		f.ProviderID = &p.ID
	case role.Admin:
	default:
		return []models.Booking{}, 0, nil
	}

	return uc.repo.ListBookings(ctx, f)
}
