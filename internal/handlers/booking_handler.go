package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/dto"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/homeservices/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	get          *ucBooking.GetBooking
	list         *ucBooking.ListBookings
	cancel       *ucBooking.CancelBooking
	updateStatus *ucBooking.UpdateBookingStatus
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	get *ucBooking.GetBooking,
	list *ucBooking.ListBookings,
	cancel *ucBooking.CancelBooking,
	updateStatus *ucBooking.UpdateBookingStatus,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		get:          get,
		list:         list,
		cancel:       cancel,
		updateStatus: updateStatus,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID  uuid.UUID `json:"serviceId" binding:"required"`
	ProviderID uuid.UUID `json:"providerId" binding:"required"`
	Date       string    `json:"bookingDate" binding:"required"`
	StartTime  string    `json:"startTime" binding:"required,hhmm"`
	Hours      int       `json:"hours" binding:"required,gte=1,lte=12"`
	Address    string    `json:"address" binding:"required,max=255"`
	Notes      string    `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CustomerID: who.UserID,
		ServiceID:  req.ServiceID,
		ProviderID: req.ProviderID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Hours:      req.Hours,
		Address:    req.Address,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, "booking.create", err)
		return
	}

	httpresp.Message(c, http.StatusCreated, "Booking created successfully", "booking", b)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), id, who)
	if err != nil {
		httperr.Respond(c, "booking.get", err)
		return
	}

	httpresp.OK(c, gin.H{"booking": b})
}

// List answers the caller's bookings. page/limit are optional; without
// them every matching booking is returned.
func (h *BookingHandler) List(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	in := ucBooking.ListBookingsInput{
		Caller: who,
		Status: c.Query("status"),
	}
	paged := c.Query("page") != "" || c.Query("limit") != ""
	var pageNum, limit int
	if paged {
		pageNum, limit, in.Offset = page(c)
		in.Limit = limit
	}

	bookings, total, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, "booking.list", err)
		return
	}

	body := gin.H{"bookings": bookings}
	if paged {
		body["pagination"] = dto.NewPagination(total, pageNum, limit)
	}
	httpresp.OK(c, body)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), id, who)
	if err != nil {
		httperr.Respond(c, "booking.cancel", err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Booking cancelled successfully", "booking", b)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "booking_not_found", "Booking not found")
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.updateStatus.Execute(c.Request.Context(), id, who, req.Status)
	if err != nil {
		httperr.Respond(c, "booking.update_status", err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Booking status updated", "booking", b)
}
