package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/audit"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/dto"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	"github.com/BruksfildServices01/homeservices/internal/models"
	ucAnalytics "github.com/BruksfildServices01/homeservices/internal/usecase/analytics"
	ucBooking "github.com/BruksfildServices01/homeservices/internal/usecase/booking"
	"github.com/BruksfildServices01/homeservices/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db        *gorm.DB
	audit     *audit.Dispatcher
	analytics *ucAnalytics.PlatformAnalytics
	bookings  *ucBooking.ListBookings
}

func NewAdminHandler(
	db *gorm.DB,
	audit *audit.Dispatcher,
	analytics *ucAnalytics.PlatformAnalytics,
	bookings *ucBooking.ListBookings,
) *AdminHandler {
	return &AdminHandler{
		db:        db,
		audit:     audit,
		analytics: analytics,
		bookings:  bookings,
	}
}

type ApproveProviderRequest struct {
	IsApproved *bool `json:"isApproved"`
}

// ======================================================
// PROVIDERS
// ======================================================

func (h *AdminHandler) PendingProviders(c *gin.Context) {
	var providers []models.ServiceProvider
	if err := h.db.WithContext(c.Request.Context()).
		Preload("User", selectPublicUser).
		Where("is_approved = ?", false).
		Order("created_at DESC").
		Find(&providers).Error; err != nil {
		httperr.Respond(c, "admin.pending_providers", err)
		return
	}

	httpresp.OK(c, gin.H{"providers": providers})
}

// ApproveProvider sets the approval flag; an empty body approves.
func (h *AdminHandler) ApproveProvider(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id", "provider_not_found", "Provider not found")
	if !ok {
		return
	}

	var req ApproveProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", validators.Translate(err))
		return
	}
	approved := true
	if req.IsApproved != nil {
		approved = *req.IsApproved
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.ServiceProvider{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if res.Error != nil {
		httperr.Respond(c, "admin.approve_provider", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "provider_not_found", "Provider not found")
		return
	}

	var provider models.ServiceProvider
	if err := h.db.WithContext(c.Request.Context()).
		Preload("User", selectPublicUser).
		First(&provider, "id = ?", id).Error; err != nil {
		httperr.Respond(c, "admin.approve_provider", err)
		return
	}

	action, verb := "provider_approved", "approved"
	if !approved {
		action, verb = "provider_rejected", "rejected"
	}
	h.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(who.UserID),
		Action:   action,
		Entity:   "provider",
		EntityID: audit.Ref(provider.ID),
	})

	httpresp.Message(c, http.StatusOK, "Provider "+verb+" successfully", "provider", provider)
}

// ======================================================
// REPORTING
// ======================================================

func (h *AdminHandler) Analytics(c *gin.Context) {
	out, err := h.analytics.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, "admin.analytics", err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AdminHandler) Users(c *gin.Context) {
	pageNum, limit, offset := page(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		r, ok := role.Parse(raw)
		if !ok {
			httperr.BadRequest(c, "invalid_role", "role must be one of: CUSTOMER, PROVIDER, ADMIN")
			return
		}
		q = q.Where("role = ?", r)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, "admin.users", err)
		return
	}

	var users []models.User
	if err := q.
		Preload("Provider").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		httperr.Respond(c, "admin.users", err)
		return
	}

	httpresp.OK(c, gin.H{
		"users":      users,
		"pagination": dto.NewPagination(total, pageNum, limit),
	})
}

func (h *AdminHandler) Bookings(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	pageNum, limit, offset := page(c)

	bookings, total, err := h.bookings.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		Caller: who,
		Status: c.Query("status"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		httperr.Respond(c, "admin.bookings", err)
		return
	}

	httpresp.OK(c, gin.H{
		"bookings":   bookings,
		"pagination": dto.NewPagination(total, pageNum, limit),
	})
}
