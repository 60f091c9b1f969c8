package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/dto"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	"github.com/BruksfildServices01/homeservices/internal/models"
	"github.com/BruksfildServices01/homeservices/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

// List is the admin view over the audit trail. from/to are business-day
// dates and both ends are inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if pageNum <= 0 {
		pageNum = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := (pageNum - 1) * limit

	// --------------------------------------------------
	// Filters
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if raw := c.Query("userId"); raw != "" {
		uid, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_user_id", "userId must be a valid id")
			return
		}
		q = q.Where("user_id = ?", uid)
	}
	if raw := c.Query("from"); raw != "" {
		if from, err := time.ParseInLocation("2006-01-02", raw, h.loc); err == nil {
			q = q.Where("created_at >= ?", timezone.StartOfDay(from))
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := time.ParseInLocation("2006-01-02", raw, h.loc); err == nil {
			q = q.Where("created_at < ?", timezone.StartOfDay(to).AddDate(0, 0, 1))
		}
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, "audit.count", err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, "audit.list", err)
		return
	}

	httpresp.OK(c, gin.H{
		"logs":       logs,
		"pagination": dto.NewPagination(total, pageNum, limit),
	})
}
