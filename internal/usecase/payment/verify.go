package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/audit"
	domain "github.com/BruksfildServices01/homeservices/internal/domain/payment"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type VerifyInput struct {
	CallerID  uuid.UUID
	BookingID uuid.UUID
	OrderID   string
	PaymentID string
	Signature string
}

type VerifyPayment struct {
	repo   domain.Repository
	secret string
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewVerifyPayment(
	repo domain.Repository,
	secret string,
	audit *audit.Dispatcher,
) *VerifyPayment {
	return &VerifyPayment{
		repo:   repo,
		secret: secret,
		audit:  audit,
		now:    time.Now,
	}
}

// Execute checks the checkout signature and completes the payment. A
// payment that is already COMPLETED is returned unchanged.
func (uc *VerifyPayment) Execute(
	ctx context.Context,
	in VerifyInput,
) (*models.Payment, error) {

	if !domain.VerifySignature(uc.secret, in.OrderID, in.PaymentID, in.Signature) {
		return nil, httperr.New(httperr.KindInvalidSignature, "invalid_signature", "Invalid payment signature")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "booking_not_found", "Booking not found")
	}
	if b.UserID != in.CallerID {
		return nil, httperr.ErrForbidden("forbidden", "Unauthorized")
	}

	current, err := uc.repo.GetPaymentByBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.NotFoundOr(err, "payment_not_found", "Payment not found")
	}
	if current.OrderID != in.OrderID {
		return nil, httperr.ErrValidation("order_mismatch", "Order does not belong to this booking")
	}

	p, applied, err := uc.repo.CompletePayment(ctx, in.BookingID, in.OrderID, in.PaymentID, in.Signature, uc.now())
	if err != nil {
		return nil, err
	}

	if applied {
		uc.audit.Dispatch(audit.Event{
			UserID:   audit.Ref(in.CallerID),
			Action:   "payment_verified",
			Entity:   "payment",
			EntityID: audit.Ref(p.ID),
			Metadata: map[string]any{"bookingId": in.BookingID, "orderId": in.OrderID},
		})
	}

	return p, nil
}
