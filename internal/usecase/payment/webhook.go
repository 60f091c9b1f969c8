package payment

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/audit"
	domain "github.com/BruksfildServices01/homeservices/internal/domain/payment"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

// webhookBody is the subset of the gateway event payload that is read.
type webhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string          `json:"id"`
				OrderID string          `json:"order_id"`
				Status  string          `json:"status"`
				Notes   json.RawMessage `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				Receipt string          `json:"receipt"`
				Notes   json.RawMessage `json:"notes"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// bookingRef recovers the booking an order was created for, from the
// notes carried on the payment or order, then from the order receipt.
func (b *webhookBody) bookingRef() (uuid.UUID, bool) {
	for _, raw := range []json.RawMessage{b.Payload.Payment.Entity.Notes, b.Payload.Order.Entity.Notes} {
		// the gateway sends [] for empty notes
		var notes map[string]any
		if len(raw) == 0 || json.Unmarshal(raw, &notes) != nil {
			continue
		}
		if s, ok := notes["bookingId"].(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				return id, true
			}
		}
	}
	if rest, ok := strings.CutPrefix(b.Payload.Order.Entity.Receipt, domain.ReceiptPrefix); ok {
		if id, err := uuid.Parse(rest); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

type WebhookInput struct {
	Body      []byte
	Signature string
	EventID   string
}

type HandleWebhook struct {
	repo   domain.Repository
	secret string
	audit  *audit.Dispatcher
	now    func() time.Time
}

// NewHandleWebhook builds the gateway callback processor. An empty secret
// disables the body signature check.
func NewHandleWebhook(
	repo domain.Repository,
	secret string,
	audit *audit.Dispatcher,
) *HandleWebhook {
	return &HandleWebhook{
		repo:   repo,
		secret: secret,
		audit:  audit,
		now:    time.Now,
	}
}

// Execute only returns an error for an inauthentic delivery. Processing
// failures are logged and swallowed so the gateway does not retry forever.
func (uc *HandleWebhook) Execute(ctx context.Context, in WebhookInput) error {
	if uc.secret != "" && !domain.VerifyWebhook(uc.secret, in.Body, in.Signature) {
		return httperr.New(httperr.KindInvalidSignature, "invalid_signature", "Invalid webhook signature")
	}

	var body webhookBody
	if err := json.Unmarshal(in.Body, &body); err != nil {
		log.Warn().Err(err).Msg("webhook: unreadable payload")
		return nil
	}

	entity := body.Payload.Payment.Entity
	eventID := in.EventID
	if eventID == "" {
		eventID = body.Event + ":" + entity.OrderID + ":" + entity.ID
	}

	logger := log.With().
		Str("event", body.Event).
		Str("event_id", eventID).
		Str("order_id", entity.OrderID).
		Logger()

	if body.Event != domain.EventCaptured && body.Event != domain.EventFailed {
		logger.Info().Msg("webhook: ignoring event")
		return nil
	}

	fresh, err := uc.repo.RecordEvent(ctx, &models.PaymentEvent{
		EventID:          eventID,
		Event:            body.Event,
		OrderID:          entity.OrderID,
		GatewayPaymentID: entity.ID,
		Payload:          datatypes.JSON(in.Body),
	})
	if err != nil {
		logger.Error().Err(err).Msg("webhook: record event failed")
		return nil
	}
	if !fresh {
		logger.Info().Msg("webhook: duplicate delivery")
		return nil
	}

	switch body.Event {
	case domain.EventCaptured:
		uc.captured(ctx, &body)
	case domain.EventFailed:
		n, err := uc.repo.FailPaymentsByOrder(ctx, entity.OrderID)
		if err != nil {
			logger.Error().Err(err).Msg("webhook: fail payments")
			return nil
		}
		logger.Info().Int64("payments", n).Msg("webhook: payments failed")
		if n > 0 {
			uc.audit.Dispatch(audit.Event{
				Action:   "payment_failed",
				Entity:   "payment",
				Metadata: map[string]any{"orderId": entity.OrderID},
			})
		}
	}

	return nil
}

func (uc *HandleWebhook) captured(ctx context.Context, body *webhookBody) {
	orderID := body.Payload.Payment.Entity.OrderID
	paymentID := body.Payload.Payment.Entity.ID
	logger := log.With().Str("order_id", orderID).Str("payment_id", paymentID).Logger()

	var bookingID uuid.UUID
	p, err := uc.repo.GetPaymentByOrder(ctx, orderID)
	switch {
	case err == nil:
		bookingID = p.BookingID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// the order may have been superseded by a newer checkout
		ref, ok := body.bookingRef()
		if !ok {
			logger.Warn().Msg("webhook: no payment for order")
			return
		}
		bookingID = ref
		logger.Info().Str("booking_id", ref.String()).Msg("webhook: order superseded, matching by booking")
	default:
		logger.Error().Err(err).Msg("webhook: load payment")
		return
	}

	out, applied, err := uc.repo.CompletePayment(ctx, bookingID, orderID, paymentID, "", uc.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn().Str("booking_id", bookingID.String()).Msg("webhook: no payment for booking")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("webhook: complete payment")
		return
	}
	if applied {
		uc.audit.Dispatch(audit.Event{
			Action:   "payment_verified",
			Entity:   "payment",
			EntityID: audit.Ref(out.ID),
			Metadata: map[string]any{"bookingId": bookingID, "orderId": orderID, "source": "webhook"},
		})
	}
}
