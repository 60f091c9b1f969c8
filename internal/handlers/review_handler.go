package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	ucReview "github.com/BruksfildServices01/homeservices/internal/usecase/review"
)

type ReviewHandler struct {
	create     *ucReview.CreateReview
	byProvider *ucReview.ListProviderReviews
	byBooking  *ucReview.GetBookingReview
}

func NewReviewHandler(
	create *ucReview.CreateReview,
	byProvider *ucReview.ListProviderReviews,
	byBooking *ucReview.GetBookingReview,
) *ReviewHandler {
	return &ReviewHandler{
		create:     create,
		byProvider: byProvider,
		byBooking:  byBooking,
	}
}

type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Rating    int       `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string    `json:"comment" binding:"max=2000"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.create.Execute(c.Request.Context(), ucReview.CreateReviewInput{
		CustomerID: who.UserID,
		BookingID:  req.BookingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		httperr.Respond(c, "review.create", err)
		return
	}

	httpresp.Message(c, http.StatusCreated, "Review submitted successfully", "review", out.Review)
}

func (h *ReviewHandler) ListByProvider(c *gin.Context) {
	id, ok := paramUUID(c, "providerId", "provider_not_found", "Provider not found")
	if !ok {
		return
	}

	reviews, err := h.byProvider.Execute(c.Request.Context(), id, 0)
	if err != nil {
		httperr.Respond(c, "review.list_by_provider", err)
		return
	}

	httpresp.OK(c, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) GetByBooking(c *gin.Context) {
	id, ok := paramUUID(c, "bookingId", "review_not_found", "Review not found")
	if !ok {
		return
	}

	r, err := h.byBooking.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, "review.get_by_booking", err)
		return
	}
	if r == nil {
		httperr.NotFound(c, "review_not_found", "Review not found")
		return
	}

	httpresp.OK(c, gin.H{"review": r})
}
