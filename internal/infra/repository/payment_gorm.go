package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/homeservices/internal/domain/booking"
	domain "github.com/BruksfildServices01/homeservices/internal/domain/payment"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PaymentGormRepository) GetPaymentByBooking(
	ctx context.Context,
	bookingID uuid.UUID,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) GetPaymentByOrder(
	ctx context.Context,
	orderID string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpsertPendingPayment(
	ctx context.Context,
	p *models.Payment,
) (bool, error) {

	p.Status = string(domain.StatusPending)
	p.GatewayPaymentID = ""
	p.Signature = ""

	db := r.db.WithContext(ctx)
	res := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "booking_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_id", "gateway_payment_id", "signature",
			"amount", "currency", "status", "updated_at",
		}),
		// a payment completed since the caller looked stays completed
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Neq{
				Column: clause.Column{Table: "payments", Name: "status"},
				Value:  string(domain.StatusCompleted),
			},
		}},
	}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}

	// the row id is the existing one when the insert turned into an update
	bookingID := p.BookingID
	*p = models.Payment{}
	if err := db.First(p, "booking_id = ?", bookingID).Error; err != nil {
		return false, err
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentGormRepository) CompletePayment(
	ctx context.Context,
	bookingID uuid.UUID,
	orderID string,
	gatewayPaymentID string,
	signature string,
	now time.Time,
) (*models.Payment, bool, error) {

	var (
		out     models.Payment
		applied bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&out, "booking_id = ?", bookingID).Error; err != nil {
			return err
		}

		if out.Status == string(domain.StatusCompleted) {
			return nil
		}

		out.Status = string(domain.StatusCompleted)
		if orderID != "" {
			out.OrderID = orderID
		}
		out.GatewayPaymentID = gatewayPaymentID
		out.Signature = signature
		out.PaidAt = &now
		if err := tx.Omit(clause.Associations).Save(&out).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Update("payment_status", string(booking.PaymentCompleted)).Error; err != nil {
			return err
		}

		// PENDING -> CONFIRMED happens here and nowhere else
		if err := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", bookingID, string(booking.StatusPending)).
			Update("status", string(booking.StatusConfirmed)).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, applied, nil
}

func (r *PaymentGormRepository) FailPaymentsByOrder(
	ctx context.Context,
	orderID string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("order_id = ? AND status <> ?", orderID, string(domain.StatusCompleted)).
		Update("status", string(domain.StatusFailed))
	return res.RowsAffected, res.Error
}

func (r *PaymentGormRepository) RecordEvent(
	ctx context.Context,
	ev *models.PaymentEvent,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(ev)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentGormRepository) FailStalePayments(
	ctx context.Context,
	before time.Time,
) (int64, error) {

	var affected int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stale []models.Payment
		if err := tx.
			Select("id", "booking_id").
			Where("status = ? AND updated_at < ?", string(domain.StatusPending), before).
			Find(&stale).Error; err != nil {
			return err
		}
		if len(stale) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(stale))
		bookingIDs := make([]uuid.UUID, 0, len(stale))
		for _, p := range stale {
			ids = append(ids, p.ID)
			bookingIDs = append(bookingIDs, p.BookingID)
		}

		res := tx.Model(&models.Payment{}).
			Where("id IN ? AND status = ?", ids, string(domain.StatusPending)).
			Update("status", string(domain.StatusFailed))
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected

		return tx.Model(&models.Booking{}).
			Where("id IN ? AND payment_status = ?", bookingIDs, string(booking.PaymentPending)).
			Update("payment_status", string(booking.PaymentFailed)).Error
	})

	return affected, err
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
