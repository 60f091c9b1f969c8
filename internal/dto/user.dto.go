package dto

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type ProviderSummaryDTO struct {
	ID             uuid.UUID `json:"id"`
	Specialization string    `json:"specialization"`
	Rating         float64   `json:"rating"`
	IsApproved     bool      `json:"isApproved"`
}

type UserSummaryDTO struct {
	ID       uuid.UUID           `json:"id"`
	Email    string              `json:"email"`
	Name     string              `json:"name"`
	Role     role.Role           `json:"role"`
	Provider *ProviderSummaryDTO `json:"provider"`
}

func NewUserSummary(u *models.User) UserSummaryDTO {
	out := UserSummaryDTO{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
	if u.Provider != nil {
		out.Provider = &ProviderSummaryDTO{
			ID:             u.Provider.ID,
			Specialization: u.Provider.Specialization,
			Rating:         u.Provider.Rating,
			IsApproved:     u.Provider.IsApproved,
		}
	}
	return out
}
