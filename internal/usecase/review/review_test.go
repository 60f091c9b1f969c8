package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homeservices/internal/domain/booking"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/infra/repository"
	"github.com/BruksfildServices01/homeservices/internal/models"
	"github.com/BruksfildServices01/homeservices/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	repo     *repository.ReviewGormRepository
	customer *models.User
	provider *models.ServiceProvider
	service  *models.Service
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewDB(t)

	customer := testutil.SeedUser(t, db, "c@example.com", role.Customer)
	_, provider := testutil.SeedProvider(t, db, "p@example.com", 400, true)
	service := testutil.SeedService(t, db, "Plumbing", models.CategoryPlumber)

	return fixture{
		db:       db,
		repo:     repository.NewReviewGormRepository(db),
		customer: customer,
		provider: provider,
		service:  service,
	}
}

func (f fixture) completedBooking(t *testing.T) *models.Booking {
	t.Helper()
	return testutil.SeedBooking(t, f.db, f.customer.ID, f.provider.ID, f.service.ID,
		string(booking.StatusCompleted), string(booking.PaymentCompleted))
}

func (f fixture) providerAggregate(t *testing.T) (float64, int) {
	t.Helper()
	var p models.ServiceProvider
	if err := f.db.First(&p, "id = ?", f.provider.ID).Error; err != nil {
		t.Fatalf("reload provider: %v", err)
	}
	return p.Rating, p.TotalReviews
}

func TestCreateReview_AggregatesRating(t *testing.T) {
	f := setup(t)
	uc := NewCreateReview(f.repo, nil)
	ctx := context.Background()

	for _, r := range []int{5, 4, 4} {
		b := f.completedBooking(t)
		if _, err := uc.Execute(ctx, CreateReviewInput{CustomerID: f.customer.ID, BookingID: b.ID, Rating: r}); err != nil {
			t.Fatalf("review %d: %v", r, err)
		}
	}

	rating, total := f.providerAggregate(t)
	if rating != 4.3 || total != 3 {
		t.Fatalf("expected 4.3 over 3 reviews, got %v over %d", rating, total)
	}
}

func TestCreateReview_Guards(t *testing.T) {
	f := setup(t)
	uc := NewCreateReview(f.repo, nil)
	ctx := context.Background()

	pending := testutil.SeedBooking(t, f.db, f.customer.ID, f.provider.ID, f.service.ID,
		string(booking.StatusConfirmed), string(booking.PaymentCompleted))
	done := f.completedBooking(t)
	stranger := testutil.SeedUser(t, f.db, "x@example.com", role.Customer)

	cases := []struct {
		name string
		in   CreateReviewInput
		kind httperr.Kind
	}{
		{"rating low", CreateReviewInput{CustomerID: f.customer.ID, BookingID: done.ID, Rating: 0}, httperr.KindValidation},
		{"rating high", CreateReviewInput{CustomerID: f.customer.ID, BookingID: done.ID, Rating: 6}, httperr.KindValidation},
		{"missing", CreateReviewInput{CustomerID: f.customer.ID, BookingID: uuid.New(), Rating: 5}, httperr.KindNotFound},
		{"stranger", CreateReviewInput{CustomerID: stranger.ID, BookingID: done.ID, Rating: 5}, httperr.KindForbidden},
		{"not completed", CreateReviewInput{CustomerID: f.customer.ID, BookingID: pending.ID, Rating: 5}, httperr.KindInvalidTransition},
	}
	for _, tc := range cases {
		if _, err := uc.Execute(ctx, tc.in); !httperr.IsKind(err, tc.kind) {
			t.Fatalf("%s: expected kind %d, got %v", tc.name, tc.kind, err)
		}
	}

	if rating, total := f.providerAggregate(t); rating != 0 || total != 0 {
		t.Fatalf("rejected reviews changed the aggregate: %v/%d", rating, total)
	}
}

func TestCreateReview_Duplicate(t *testing.T) {
	f := setup(t)
	uc := NewCreateReview(f.repo, nil)
	ctx := context.Background()
	b := f.completedBooking(t)

	if _, err := uc.Execute(ctx, CreateReviewInput{CustomerID: f.customer.ID, BookingID: b.ID, Rating: 5}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := uc.Execute(ctx, CreateReviewInput{CustomerID: f.customer.ID, BookingID: b.ID, Rating: 1})
	if !httperr.IsBusiness(err, "review_exists") {
		t.Fatalf("expected conflict, got %v", err)
	}

	if rating, total := f.providerAggregate(t); rating != 5 || total != 1 {
		t.Fatalf("duplicate changed the aggregate: %v/%d", rating, total)
	}
}

func TestCreateAndAggregate_UniqueIndex(t *testing.T) {
	f := setup(t)
	b := f.completedBooking(t)
	ctx := context.Background()

	first := &models.Review{BookingID: b.ID, UserID: f.customer.ID, ProviderID: f.provider.ID, Rating: 3}
	if _, err := f.repo.CreateAndAggregate(ctx, first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := &models.Review{BookingID: b.ID, UserID: f.customer.ID, ProviderID: f.provider.ID, Rating: 1}
	if _, err := f.repo.CreateAndAggregate(ctx, second); !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict from unique index, got %v", err)
	}
}

func TestListAndGet(t *testing.T) {
	f := setup(t)
	uc := NewCreateReview(f.repo, nil)
	ctx := context.Background()

	b1 := f.completedBooking(t)
	b2 := f.completedBooking(t)
	for _, b := range []*models.Booking{b1, b2} {
		if _, err := uc.Execute(ctx, CreateReviewInput{CustomerID: f.customer.ID, BookingID: b.ID, Rating: 4, Comment: " ok "}); err != nil {
			t.Fatalf("review: %v", err)
		}
	}

	list, err := NewListProviderReviews(f.repo).Execute(ctx, f.provider.ID, 0)
	if err != nil || len(list) != 2 {
		t.Fatalf("expected 2 reviews, got %d (%v)", len(list), err)
	}
	for _, r := range list {
		if r.User == nil || r.User.Name == "" || r.ServiceName != "Plumbing" {
			t.Fatalf("expected author and service projections, got %+v", r)
		}
		if r.User.Email != "" || r.User.Phone != "" || r.Booking != nil {
			t.Fatalf("listing exposes private fields: %+v", r)
		}
	}

	got, err := NewGetBookingReview(f.repo).Execute(ctx, b1.ID)
	if err != nil || got == nil || got.Comment != "ok" {
		t.Fatalf("unexpected review %+v (%v)", got, err)
	}
	if got.User == nil || got.User.Email != "" || got.ServiceName != "Plumbing" {
		t.Fatalf("unexpected projection %+v", got)
	}

	none, err := NewGetBookingReview(f.repo).Execute(ctx, uuid.New())
	if err != nil || none != nil {
		t.Fatalf("expected nil review, got %+v (%v)", none, err)
	}
}
