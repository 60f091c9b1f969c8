package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/domain/role"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Avatar       string    `gorm:"size:512" json:"avatar"`
	Role         role.Role `gorm:"size:20;not null;index" json:"role"`

	Provider *ServiceProvider `gorm:"foreignKey:UserID" json:"provider,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
