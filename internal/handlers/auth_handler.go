package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/auth"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/dto"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/httpresp"
	"github.com/BruksfildServices01/homeservices/internal/models"
	"github.com/BruksfildServices01/homeservices/internal/validators"
)

type AuthHandler struct {
	db          *gorm.DB
	tokens      *auth.TokenManager
	hasher      *auth.PasswordHasher
	checkDomain bool
}

func NewAuthHandler(
	db *gorm.DB,
	tokens *auth.TokenManager,
	hasher *auth.PasswordHasher,
	checkDomain bool,
) *AuthHandler {
	return &AuthHandler{
		db:          db,
		tokens:      tokens,
		hasher:      hasher,
		checkDomain: checkDomain,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"max=20"`
	Role     string `json:"role"`

	// provider only
	Specialization string  `json:"specialization" binding:"max=120"`
	HourlyRate     float64 `json:"hourlyRate" binding:"gte=0"`
	Experience     *int    `json:"experience" binding:"omitempty,gte=0"`
	Bio            string  `json:"bio"`
	Address        string  `json:"address" binding:"max=255"`
	City           string  `json:"city" binding:"max=100"`
	State          string  `json:"state" binding:"max=100"`
	Pincode        string  `json:"pincode" binding:"max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Role == "" {
		req.Role = string(role.Customer)
	}
	r, ok := role.Parse(req.Role)
	if !ok || !r.Registrable() {
		httperr.BadRequest(c, "invalid_role", "role must be one of: USER, CUSTOMER, PROVIDER")
		return
	}

	if r == role.Provider {
		if strings.TrimSpace(req.Specialization) == "" || req.HourlyRate <= 0 || req.Experience == nil {
			httperr.BadRequest(c, "provider_fields_required",
				"specialization, hourlyRate and experience are required for providers")
			return
		}
	}

	email := validators.NormalizeEmail(req.Email)
	if h.checkDomain && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not accept mail")
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		httperr.Respond(c, "auth.register", err)
		return
	}
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "email_taken", "User already exists with this email")
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		httperr.Respond(c, "auth.register", err)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         r,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if r != role.Provider {
			return nil
		}

		provider := models.ServiceProvider{
			UserID:         user.ID,
			Specialization: validators.TitleCase(req.Specialization),
			HourlyRate:     req.HourlyRate,
			Experience:     *req.Experience,
			Bio:            strings.TrimSpace(req.Bio),
			Address:        strings.TrimSpace(req.Address),
			City:           validators.TitleCase(req.City),
			State:          validators.TitleCase(req.State),
			Pincode:        strings.TrimSpace(req.Pincode),
			IsApproved:     false,
			IsAvailable:    true,
		}
		if err := tx.Create(&provider).Error; err != nil {
			return err
		}
		user.Provider = &provider
		return nil
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			// lost a race with a concurrent registration
			httperr.Write(c, http.StatusConflict, "email_taken", "User already exists with this email")
			return
		}
		httperr.Respond(c, "auth.register", err)
		return
	}

	access, refresh, err := h.issuePair(&user)
	if err != nil {
		httperr.Respond(c, "auth.register", err)
		return
	}

	httpresp.Created(c, gin.H{
		"message":      "Registration successful",
		"user":         dto.NewUserSummary(&user),
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Preload("Provider").
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, "auth.login", err)
		return
	}
	if err != nil || !h.hasher.Verify(req.Password, user.PasswordHash) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
		return
	}

	if user.Role == role.Provider && (user.Provider == nil || !user.Provider.IsApproved) {
		httperr.Forbidden(c, "provider_pending", "Provider account pending approval")
		return
	}

	access, refresh, err := h.issuePair(&user)
	if err != nil {
		httperr.Respond(c, "auth.login", err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":      "Login successful",
		"user":         dto.NewUserSummary(&user),
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	if strings.TrimSpace(req.RefreshToken) == "" {
		httperr.BadRequest(c, "missing_refresh_token", "Refresh token required")
		return
	}

	id, err := h.tokens.VerifyRefresh(strings.TrimSpace(req.RefreshToken))
	if err != nil {
		httperr.Forbidden(c, "invalid_refresh_token", "Invalid refresh token")
		return
	}

	// the account may have been removed since the token was issued
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Select("id", "email", "role").
		First(&user, "id = ?", id.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Forbidden(c, "invalid_refresh_token", "Invalid refresh token")
			return
		}
		httperr.Respond(c, "auth.refresh", err)
		return
	}

	access, err := h.tokens.IssueAccess(identityOf(&user))
	if err != nil {
		httperr.Respond(c, "auth.refresh", err)
		return
	}

	httpresp.OK(c, gin.H{"accessToken": access})
}

// --------- Helpers ---------

func (h *AuthHandler) issuePair(u *models.User) (string, string, error) {
	id := identityOf(u)

	access, err := h.tokens.IssueAccess(id)
	if err != nil {
		return "", "", err
	}
	refresh, err := h.tokens.IssueRefresh(id)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func identityOf(u *models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}
