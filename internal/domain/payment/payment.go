package payment

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/models"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

const (
	EventCaptured = "payment.captured"
	EventFailed   = "payment.failed"
)

// ===============================
// Gateway port
// ===============================

// ReceiptPrefix precedes the booking id in an order receipt.
const ReceiptPrefix = "booking_"

type OrderRequest struct {
	Amount   int64 // minor currency unit
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
}

type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	// KeyID is the publishable key handed to the client checkout.
	KeyID() string
}

// ToMinorUnits converts a major-unit amount (rupees) to paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ===============================
// Repository port
// ===============================

type Repository interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)

	// UpsertPendingPayment creates or resets the single payment row of a
	// booking to PENDING with a fresh order id. A COMPLETED row is never
	// reset; reset is false in that case.
	UpsertPendingPayment(ctx context.Context, p *models.Payment) (reset bool, err error)

	// CompletePayment marks the booking's payment COMPLETED under orderID
	// and confirms a PENDING booking in one transaction. applied is false
	// when the payment was already completed and nothing changed.
	CompletePayment(ctx context.Context, bookingID uuid.UUID, orderID, gatewayPaymentID, signature string, now time.Time) (p *models.Payment, applied bool, err error)

	GetPaymentByOrder(ctx context.Context, orderID string) (*models.Payment, error)

	// FailPaymentsByOrder marks every non-completed payment carrying the
	// order id FAILED.
	FailPaymentsByOrder(ctx context.Context, orderID string) (int64, error)

	// RecordEvent stores a webhook delivery. It returns false when the event
	// id was seen before.
	RecordEvent(ctx context.Context, ev *models.PaymentEvent) (bool, error)

	// FailStalePayments fails PENDING payments not touched since before.
	FailStalePayments(ctx context.Context, before time.Time) (int64, error)
}
