package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/homeservices/internal/domain/analytics"
	"github.com/BruksfildServices01/homeservices/internal/domain/booking"
	"github.com/BruksfildServices01/homeservices/internal/domain/payment"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type AnalyticsGormRepository struct {
	db *gorm.DB
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

// --------------------------------------------------
// Platform
// --------------------------------------------------

func (r *AnalyticsGormRepository) Summary(ctx context.Context) (*domain.Summary, error) {
	db := r.db.WithContext(ctx)
	var s domain.Summary

	if err := db.Model(&models.User{}).
		Where("role = ?", role.Customer).
		Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ServiceProvider{}).Count(&s.TotalProviders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ServiceProvider{}).
		Where("is_approved = ?", true).
		Count(&s.ApprovedProviders).Error; err != nil {
		return nil, err
	}
	s.PendingProviders = s.TotalProviders - s.ApprovedProviders

	if err := db.Model(&models.Booking{}).Count(&s.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Booking{}).
		Where("status = ?", string(booking.StatusCompleted)).
		Count(&s.CompletedBookings).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Payment{}).
		Where("status = ?", string(payment.StatusCompleted)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.TotalRevenue).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *AnalyticsGormRepository) RecentBookings(ctx context.Context, limit int) ([]models.Booking, error) {
	var out []models.Booking
	err := withBookingProjections(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *AnalyticsGormRepository) BookingsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	var out []domain.StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, err
}

func (r *AnalyticsGormRepository) PopularServices(ctx context.Context, limit int) ([]domain.ServiceCount, error) {
	var out []domain.ServiceCount
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.service_id AS service_id, services.name AS service_name, COUNT(*) AS booking_count").
		Joins("JOIN services ON services.id = bookings.service_id").
		Group("bookings.service_id, services.name").
		Order("booking_count DESC, services.name").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// --------------------------------------------------
// Provider dashboard
// --------------------------------------------------

func (r *AnalyticsGormRepository) ProviderByUser(ctx context.Context, userID uuid.UUID) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AnalyticsGormRepository) ProviderStats(
	ctx context.Context,
	p *models.ServiceProvider,
) (*domain.ProviderStats, error) {

	db := r.db.WithContext(ctx)
	s := domain.ProviderStats{
		Rating:       p.Rating,
		TotalReviews: p.TotalReviews,
	}

	if err := db.Model(&models.Booking{}).
		Where("provider_id = ?", p.ID).
		Count(&s.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ?", p.ID, string(booking.StatusCompleted)).
		Count(&s.CompletedBookings).Error; err != nil {
		return nil, err
	}

	// earnings count only work that was both done and paid for
	if err := db.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ? AND payment_status = ?",
			p.ID, string(booking.StatusCompleted), string(booking.PaymentCompleted)).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&s.TotalEarnings).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *AnalyticsGormRepository) ProviderRecentBookings(
	ctx context.Context,
	providerID uuid.UUID,
	limit int,
) ([]models.Booking, error) {

	var out []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		Preload("Payment").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// Compile-time check
var _ domain.Repository = (*AnalyticsGormRepository)(nil)
