package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	ucPayment "github.com/BruksfildServices01/homeservices/internal/usecase/payment"
)

type PaymentHandler struct {
	createOrder *ucPayment.CreateOrder
	verify      *ucPayment.VerifyPayment
	webhook     *ucPayment.HandleWebhook
}

func NewPaymentHandler(
	createOrder *ucPayment.CreateOrder,
	verify *ucPayment.VerifyPayment,
	webhook *ucPayment.HandleWebhook,
) *PaymentHandler {
	return &PaymentHandler{
		createOrder: createOrder,
		verify:      verify,
		webhook:     webhook,
	}
}

// --------- Requests ---------

type CreateOrderRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

type VerifyPaymentRequest struct {
	BookingID         uuid.UUID `json:"bookingId" binding:"required"`
	RazorpayOrderID   string    `json:"razorpayOrderId" binding:"required"`
	RazorpayPaymentID string    `json:"razorpayPaymentId" binding:"required"`
	RazorpaySignature string    `json:"razorpaySignature" binding:"required"`
}

// --------- Handlers ---------

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.createOrder.Execute(c.Request.Context(), who.UserID, req.BookingID)
	if err != nil {
		httperr.Respond(c, "payment.create_order", err)
		return
	}

	httpresp.OK(c, out)
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.verify.Execute(c.Request.Context(), ucPayment.VerifyInput{
		CallerID:  who.UserID,
		BookingID: req.BookingID,
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	})
	if err != nil {
		httperr.Respond(c, "payment.verify", err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Payment verified successfully", "payment", p)
}

// Webhook is called by the gateway, not by a client. Anything past the
// authenticity check is acknowledged so the gateway stops retrying.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Unreadable body")
		return
	}

	err = h.webhook.Execute(c.Request.Context(), ucPayment.WebhookInput{
		Body:      body,
		Signature: c.GetHeader("X-Razorpay-Signature"),
		EventID:   c.GetHeader("X-Razorpay-Event-Id"),
	})
	if err != nil {
		httperr.Respond(c, "payment.webhook", err)
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}
