// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

// NewDB opens a migrated in-memory sqlite database. A single connection
// keeps every statement on the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedUser inserts a user with the given role. The password hash is a
// placeholder; tests that log in hash their own.
func SeedUser(t *testing.T, db *gorm.DB, email string, r role.Role) *models.User {
	t.Helper()

	u := &models.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test " + string(r),
		Phone:        "9999999999",
		Role:         r,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedProvider inserts a provider user plus profile.
func SeedProvider(t *testing.T, db *gorm.DB, email string, rate float64, approved bool) (*models.User, *models.ServiceProvider) {
	t.Helper()

	u := SeedUser(t, db, email, role.Provider)
	p := &models.ServiceProvider{
		UserID:         u.ID,
		Specialization: "ELECTRICIAN",
		HourlyRate:     rate,
		Experience:     5,
		City:           "Pune",
		IsApproved:     approved,
		IsAvailable:    true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	return u, p
}

func SeedService(t *testing.T, db *gorm.DB, name string, category models.ServiceCategory) *models.Service {
	t.Helper()

	s := &models.Service{
		Name:      name,
		Category:  category,
		BasePrice: 300,
		IsActive:  true,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return s
}

// SeedBooking inserts a booking in the given state without going through
// the use case.
func SeedBooking(t *testing.T, db *gorm.DB, userID, providerID, serviceID uuid.UUID, status, paymentStatus string) *models.Booking {
	t.Helper()

	b := &models.Booking{
		UserID:        userID,
		ProviderID:    providerID,
		ServiceID:     serviceID,
		StartTime:     "10:00",
		Hours:         2,
		TotalPrice:    1000,
		Status:        status,
		PaymentStatus: paymentStatus,
		Address:       "12 MG Road",
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}
