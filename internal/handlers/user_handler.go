package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	"github.com/BruksfildServices01/homeservices/internal/imaging"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type UserHandler struct {
	db    *gorm.DB
	store objectStore
}

func NewUserHandler(db *gorm.DB, store objectStore) *UserHandler {
	return &UserHandler{db: db, store: store}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Phone  *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Avatar *string `json:"avatar,omitempty" binding:"omitempty,max=512"`
}

// --------- Handlers ---------

func (h *UserHandler) GetProfile(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.loadUser(c, who.UserID)
	if err != nil {
		httperr.Respond(c, "user.profile", httperr.NotFoundOr(err, "user_not_found", "User not found"))
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Avatar != nil {
		updates["avatar"] = strings.TrimSpace(*req.Avatar)
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.User{}).
			Where("id = ?", who.UserID).
			Updates(updates).Error; err != nil {
			httperr.Respond(c, "user.update_profile", err)
			return
		}
	}

	user, err := h.loadUser(c, who.UserID)
	if err != nil {
		httperr.Respond(c, "user.update_profile", httperr.NotFoundOr(err, "user_not_found", "User not found"))
		return
	}

	httpresp.Message(c, http.StatusOK, "Profile updated successfully", "user", user)
}

// UploadAvatar stores the picture and points the profile at it.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	url, ok := storeImage(c, h.store, "avatars", imaging.Avatar)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("id = ?", who.UserID).
		Update("avatar", url).Error; err != nil {
		httperr.Respond(c, "user.upload_avatar", err)
		return
	}

	user, err := h.loadUser(c, who.UserID)
	if err != nil {
		httperr.Respond(c, "user.upload_avatar", httperr.NotFoundOr(err, "user_not_found", "User not found"))
		return
	}

	httpresp.Message(c, http.StatusOK, "Avatar updated successfully", "user", user)
}

// Bookings is the caller's own booking history as a customer.
func (h *UserHandler) Bookings(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Service").
		Preload("Provider.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "phone", "avatar")
		}).
		Preload("Payment").
		Preload("Review").
		Where("user_id = ?", who.UserID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		httperr.Respond(c, "user.bookings", err)
		return
	}

	httpresp.OK(c, gin.H{"bookings": bookings})
}

func (h *UserHandler) loadUser(c *gin.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Provider").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
