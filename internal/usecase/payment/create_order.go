package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/homeservices/internal/domain/payment"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

// CreateOrderOutput feeds the client checkout. Notes are handed to checkout
// so the captured payment carries the booking id.
type CreateOrderOutput struct {
	OrderID  string            `json:"orderId"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	KeyID    string            `json:"keyId"`
	Notes    map[string]string `json:"notes"`
	Payment  *models.Payment   `json:"payment"`
}

type CreateOrder struct {
	repo     domain.Repository
	gateway  domain.Gateway
	currency string
}

func NewCreateOrder(
	repo domain.Repository,
	gateway domain.Gateway,
	currency string,
) *CreateOrder {
	return &CreateOrder{
		repo:     repo,
		gateway:  gateway,
		currency: currency,
	}
}

func (uc *CreateOrder) Execute(
	ctx context.Context,
	customerID uuid.UUID,
	bookingID uuid.UUID,
) (*CreateOrderOutput, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "booking_not_found", "Booking not found")
	}
	if b.UserID != customerID {
		return nil, httperr.ErrForbidden("forbidden", "Unauthorized")
	}

	existing, err := uc.repo.GetPaymentByBooking(ctx, bookingID)
	switch {
	case err == nil && existing.Status == string(domain.StatusCompleted):
		return nil, httperr.New(httperr.KindAlreadyPaid, "already_paid", "Payment already completed")
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	notes := map[string]string{"bookingId": b.ID.String()}
	order, err := uc.gateway.CreateOrder(ctx, domain.OrderRequest{
		Amount:   domain.ToMinorUnits(b.TotalPrice),
		Currency: uc.currency,
		Receipt:  domain.ReceiptPrefix + b.ID.String(),
		Notes:    notes,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", b.ID.String()).Msg("gateway order creation failed")
		return nil, httperr.ErrUpstream("gateway_error", "Failed to create payment order")
	}

	p := &models.Payment{
		BookingID: b.ID,
		OrderID:   order.ID,
		Amount:    b.TotalPrice,
		Currency:  order.Currency,
	}
	reset, err := uc.repo.UpsertPendingPayment(ctx, p)
	if err != nil {
		return nil, err
	}
	if !reset {
		// verified while the order was being created
		return nil, httperr.New(httperr.KindAlreadyPaid, "already_paid", "Payment already completed")
	}

	return &CreateOrderOutput{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    uc.gateway.KeyID(),
		Notes:    notes,
		Payment:  p,
	}, nil
}
