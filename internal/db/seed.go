package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/models"
	"github.com/BruksfildServices01/homeservices/internal/validators"
)

// catalogNamespace keeps seeded service ids stable across databases.
var catalogNamespace = uuid.MustParse("6f1c2d7e-3b9a-4c55-9e0f-2a8d4b1c7e90")

type passwordHasher interface {
	Hash(password string) (string, error)
}

var defaultServices = []models.Service{
	{
		Name:        "Maid Service",
		Description: "Professional house cleaning and maid services for your home",
		Category:    models.CategoryMaid,
		BasePrice:   150,
		ImageURL:    "/images/maid-service.jpg",
	},
	{
		Name:        "Cooking Service",
		Description: "Experienced cooks for daily meals and special occasions",
		Category:    models.CategoryCook,
		BasePrice:   200,
		ImageURL:    "/images/cook-service.jpg",
	},
	{
		Name:        "Electrician Service",
		Description: "Licensed electricians for repairs, installations, and maintenance",
		Category:    models.CategoryElectrician,
		BasePrice:   300,
		ImageURL:    "/images/electrician-service.jpg",
	},
	{
		Name:        "Plumbing Service",
		Description: "Expert plumbers for all your plumbing needs",
		Category:    models.CategoryPlumber,
		BasePrice:   250,
		ImageURL:    "/images/plumber-service.jpg",
	},
	{
		Name:        "Deep Cleaning Service",
		Description: "Comprehensive deep cleaning for homes and offices",
		Category:    models.CategoryCleaning,
		BasePrice:   400,
		ImageURL:    "/images/cleaning-service.jpg",
	},
}

// SeedCatalog inserts the default services once. Rows that already exist,
// including ones an admin has since edited, are left alone.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	rows := make([]models.Service, len(defaultServices))
	for i, s := range defaultServices {
		s.ID = uuid.NewSHA1(catalogNamespace, []byte(s.Category))
		s.IsActive = true
		rows[i] = s
	}

	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// SeedAdmin creates the admin account when email and password are set and
// no user holds that email yet.
func SeedAdmin(ctx context.Context, db *gorm.DB, hasher passwordHasher, email, password, name string) error {
	email = validators.NormalizeEmail(email)
	if email == "" || password == "" {
		log.Info().Msg("admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	var existing models.User
	err := db.WithContext(ctx).Select("id").First(&existing, "email = ?", email).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		Role:         role.Admin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("admin user created")
	return nil
}
