package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/homeservices/internal/domain/review"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ReviewGormRepository) ExistsForBooking(
	ctx context.Context,
	bookingID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAndAggregate inserts the review and rewrites the provider aggregate
// from the store in the same transaction. The provider row is locked first
// so concurrent reviews for one provider serialise.
func (r *ReviewGormRepository) CreateAndAggregate(
	ctx context.Context,
	rv *models.Review,
) (*domain.Aggregate, error) {

	var agg domain.Aggregate

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.ServiceProvider
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&provider, "id = ?", rv.ProviderID).Error; err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(rv).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrConflict("review_exists", "Review already submitted for this booking")
			}
			return err
		}

		if err := tx.Model(&models.ServiceProvider{}).
			Where("id = ?", rv.ProviderID).
			Updates(map[string]any{
				"rating": gorm.Expr(
					"COALESCE((SELECT ROUND(AVG(rating), 1) FROM reviews WHERE provider_id = ?), 0)",
					rv.ProviderID,
				),
				"total_reviews": gorm.Expr(
					"(SELECT COUNT(*) FROM reviews WHERE provider_id = ?)",
					rv.ProviderID,
				),
			}).Error; err != nil {
			return err
		}

		if err := tx.
			Select("rating", "total_reviews").
			First(&provider, "id = ?", rv.ProviderID).Error; err != nil {
			return err
		}

		agg = domain.Aggregate{Rating: provider.Rating, TotalReviews: provider.TotalReviews}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *ReviewGormRepository) ListByProvider(
	ctx context.Context,
	providerID uuid.UUID,
	limit int,
) ([]models.Review, error) {

	q := r.db.WithContext(ctx).
		Select("reviews.*, services.name AS service_name").
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Joins("JOIN services ON services.id = bookings.service_id").
		Preload("User", reviewAuthor).
		Where("reviews.provider_id = ?", providerID).
		Order("reviews.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.Review
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewGormRepository) GetByBooking(
	ctx context.Context,
	bookingID uuid.UUID,
) (*models.Review, error) {

	var rv models.Review
	if err := r.db.WithContext(ctx).
		Select("reviews.*, services.name AS service_name").
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Joins("JOIN services ON services.id = bookings.service_id").
		Preload("User", reviewAuthor).
		First(&rv, "reviews.booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// reviewAuthor is the public face of a reviewer.
func reviewAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar")
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
