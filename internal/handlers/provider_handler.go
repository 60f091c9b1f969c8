package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	"github.com/BruksfildServices01/homeservices/internal/models"
	ucAnalytics "github.com/BruksfildServices01/homeservices/internal/usecase/analytics"
	"github.com/BruksfildServices01/homeservices/internal/validators"
)

const providerDetailReviews = 10

// ======================================================
// HANDLER
// ======================================================

type ProviderHandler struct {
	db        *gorm.DB
	dashboard *ucAnalytics.ProviderDashboard
}

func NewProviderHandler(db *gorm.DB, dashboard *ucAnalytics.ProviderDashboard) *ProviderHandler {
	return &ProviderHandler{db: db, dashboard: dashboard}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilitySlot struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,gte=0,lte=6"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
	IsActive  *bool  `json:"isActive"`
}

type UpdateAvailabilityRequest struct {
	Slots []AvailabilitySlot `json:"availabilitySlots" binding:"required,dive"`
}

type UpdateProviderProfileRequest struct {
	Specialization *string  `json:"specialization,omitempty" binding:"omitempty,min=2,max=120"`
	HourlyRate     *float64 `json:"hourlyRate,omitempty" binding:"omitempty,gt=0"`
	Experience     *int     `json:"experience,omitempty" binding:"omitempty,gte=0"`
	Bio            *string  `json:"bio,omitempty"`
	Address        *string  `json:"address,omitempty" binding:"omitempty,max=255"`
	City           *string  `json:"city,omitempty" binding:"omitempty,max=100"`
	State          *string  `json:"state,omitempty" binding:"omitempty,max=100"`
	Pincode        *string  `json:"pincode,omitempty" binding:"omitempty,max=20"`
	IsAvailable    *bool    `json:"isAvailable,omitempty"`
}

// ======================================================
// PUBLIC
// ======================================================

// List returns approved, available providers, best rated first.
func (h *ProviderHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("is_approved = ? AND is_available = ?", true, true)

	if s := strings.ToLower(strings.TrimSpace(c.Query("specialization"))); s != "" {
		q = q.Where(`LOWER(specialization) LIKE ? ESCAPE '\'`, "%"+escapeLike(s)+"%")
	}
	if city := strings.ToLower(strings.TrimSpace(c.Query("city"))); city != "" {
		q = q.Where("LOWER(city) = ?", city)
	}
	if raw := strings.TrimSpace(c.Query("minRating")); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_min_rating", "minRating must be a number")
			return
		}
		q = q.Where("rating >= ?", minRating)
	}

	var providers []models.ServiceProvider
	if err := q.
		Preload("User", selectPublicUser).
		Preload("Availability", activeAvailability).
		Order("rating DESC").
		Find(&providers).Error; err != nil {
		httperr.Respond(c, "provider.list", err)
		return
	}

	httpresp.OK(c, gin.H{"providers": providers})
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id", "provider_not_found", "Provider not found")
	if !ok {
		return
	}

	var provider models.ServiceProvider
	if err := h.db.WithContext(c.Request.Context()).
		Preload("User", selectPublicUser).
		Preload("Availability", activeAvailability).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(providerDetailReviews)
		}).
		Preload("Reviews.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		First(&provider, "id = ?", id).Error; err != nil {
		httperr.Respond(c, "provider.get", httperr.NotFoundOr(err, "provider_not_found", "Provider not found"))
		return
	}

	httpresp.OK(c, gin.H{"provider": provider})
}

// ======================================================
// PROVIDER SELF SERVICE
// ======================================================

// UpdateAvailability replaces the whole weekly schedule.
func (h *ProviderHandler) UpdateAvailability(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	provider, ok := h.ownProfile(c, who.UserID)
	if !ok {
		return
	}

	slots := make([]models.Availability, 0, len(req.Slots))
	for _, s := range req.Slots {
		start, end, ok := slotBounds(s.StartTime, s.EndTime)
		if !ok {
			httperr.BadRequest(c, "invalid_slot", "startTime must be before endTime")
			return
		}
		active := true
		if s.IsActive != nil {
			active = *s.IsActive
		}
		slots = append(slots, models.Availability{
			ProviderID: provider.ID,
			DayOfWeek:  *s.DayOfWeek,
			StartTime:  start,
			EndTime:    end,
			IsActive:   active,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ?", provider.ID).Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
	if err != nil {
		httperr.Respond(c, "provider.update_availability", err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Availability updated successfully", "availability", slots)
}

func (h *ProviderHandler) UpdateProfile(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req UpdateProviderProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	provider, ok := h.ownProfile(c, who.UserID)
	if !ok {
		return
	}

	updates := map[string]any{}
	if req.Specialization != nil {
		updates["specialization"] = validators.TitleCase(*req.Specialization)
	}
	if req.HourlyRate != nil {
		updates["hourly_rate"] = *req.HourlyRate
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if req.Bio != nil {
		updates["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		updates["city"] = validators.TitleCase(*req.City)
	}
	if req.State != nil {
		updates["state"] = validators.TitleCase(*req.State)
	}
	if req.Pincode != nil {
		updates["pincode"] = strings.TrimSpace(*req.Pincode)
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.ServiceProvider{}).
			Where("id = ?", provider.ID).
			Updates(updates).Error; err != nil {
			httperr.Respond(c, "provider.update_profile", err)
			return
		}
	}

	var updated models.ServiceProvider
	if err := h.db.WithContext(c.Request.Context()).
		Preload("User", selectPublicUser).
		First(&updated, "id = ?", provider.ID).Error; err != nil {
		httperr.Respond(c, "provider.update_profile", err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Provider profile updated successfully", "provider", updated)
}

func (h *ProviderHandler) Dashboard(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	out, err := h.dashboard.Execute(c.Request.Context(), who.UserID)
	if err != nil {
		httperr.Respond(c, "provider.dashboard", err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// HELPERS
// ======================================================

func (h *ProviderHandler) ownProfile(c *gin.Context, userID uuid.UUID) (*models.ServiceProvider, bool) {
	var p models.ServiceProvider
	if err := h.db.WithContext(c.Request.Context()).
		First(&p, "user_id = ?", userID).Error; err != nil {
		httperr.Respond(c, "provider.own_profile", httperr.NotFoundOr(err, "provider_not_found", "Provider profile not found"))
		return nil, false
	}
	return &p, true
}

func selectPublicUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "phone", "avatar")
}

func activeAvailability(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("day_of_week ASC, start_time ASC")
}

// slotBounds normalises both ends to HH:MM and checks start < end.
func slotBounds(start, end string) (string, string, bool) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return "", "", false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return "", "", false
	}
	if !s.Before(e) {
		return "", "", false
	}
	return s.Format("15:04"), e.Format("15:04"), true
}
