package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	"github.com/BruksfildServices01/homeservices/internal/imaging"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	store objectStore
}

func NewServiceHandler(db *gorm.DB, store objectStore) *ServiceHandler {
	return &ServiceHandler{db: db, store: store}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	BasePrice   float64 `json:"basePrice" binding:"required,gt=0"`
	ImageURL    string  `json:"imageUrl" binding:"max=512"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	BasePrice   *float64 `json:"basePrice,omitempty" binding:"omitempty,gt=0"`
	ImageURL    *string  `json:"imageUrl,omitempty" binding:"omitempty,max=512"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Where("is_active = ?", true)

	if category := strings.ToUpper(strings.TrimSpace(c.Query("category"))); category != "" {
		q = q.Where("category = ?", category)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, "service.list", err)
		return
	}

	httpresp.OK(c, gin.H{"services": services})
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id", "service_not_found", "Service not found")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, "id = ?", id).Error; err != nil {
		httperr.Respond(c, "service.get", httperr.NotFoundOr(err, "service_not_found", "Service not found"))
		return
	}

	httpresp.OK(c, gin.H{"service": service})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	category, ok := parseCategory(c, req.Category)
	if !ok {
		return
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		BasePrice:   req.BasePrice,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		IsActive:    true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Respond(c, "service.create", err)
		return
	}

	httpresp.Message(c, http.StatusCreated, "Service created successfully", "service", service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id", "service_not_found", "Service not found")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, "id = ?", id).Error; err != nil {
		httperr.Respond(c, "service.update", httperr.NotFoundOr(err, "service_not_found", "Service not found"))
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		category, ok := parseCategory(c, *req.Category)
		if !ok {
			return
		}
		service.Category = category
	}
	if req.BasePrice != nil {
		service.BasePrice = *req.BasePrice
	}
	if req.ImageURL != nil {
		service.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Respond(c, "service.update", err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Service updated successfully", "service", service)
}

func (h *ServiceHandler) UploadImage(c *gin.Context) {
	id, ok := paramUUID(c, "id", "service_not_found", "Service not found")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, "id = ?", id).Error; err != nil {
		httperr.Respond(c, "service.upload_image", httperr.NotFoundOr(err, "service_not_found", "Service not found"))
		return
	}

	url, ok := storeImage(c, h.store, "services", imaging.Service)
	if !ok {
		return
	}

	service.ImageURL = url
	if err := h.db.WithContext(c.Request.Context()).
		Model(&service).
		Update("image_url", url).Error; err != nil {
		httperr.Respond(c, "service.upload_image", err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Service image updated successfully", "service", service)
}

func parseCategory(c *gin.Context, raw string) (models.ServiceCategory, bool) {
	category := models.ServiceCategory(strings.ToUpper(strings.TrimSpace(raw)))
	if !category.Valid() {
		httperr.BadRequest(c, "invalid_category", "category must be one of: MAID, COOK, ELECTRICIAN, PLUMBER, CLEANING")
		return "", false
	}
	return category, true
}
