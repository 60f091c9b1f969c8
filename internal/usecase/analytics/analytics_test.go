package analytics

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
	"github.com/BruksfildServices01/homeservices/internal/infra/repository"
	"github.com/BruksfildServices01/homeservices/internal/models"
	"github.com/BruksfildServices01/homeservices/internal/testutil"
)

func TestPlatformAnalytics(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	c1 := testutil.SeedUser(t, db, "c1@example.com", role.Customer)
	testutil.SeedUser(t, db, "c2@example.com", role.Customer)
	testutil.SeedUser(t, db, "admin@example.com", role.Admin)
	_, approved := testutil.SeedProvider(t, db, "p1@example.com", 200, true)
	testutil.SeedProvider(t, db, "p2@example.com", 300, false)

	wiring := testutil.SeedService(t, db, "Wiring", models.CategoryElectrician)
	cook := testutil.SeedService(t, db, "Cooking", models.CategoryCook)

	b1 := testutil.SeedBooking(t, db, c1.ID, approved.ID, wiring.ID, "COMPLETED", "COMPLETED")
	testutil.SeedBooking(t, db, c1.ID, approved.ID, wiring.ID, "PENDING", "PENDING")
	testutil.SeedBooking(t, db, c1.ID, approved.ID, cook.ID, "CANCELLED", "PENDING")

	db.Create(&models.Payment{BookingID: b1.ID, OrderID: "order_1", Amount: 1000, Currency: "INR", Status: "COMPLETED"})

	out, err := NewPlatformAnalytics(repository.NewAnalyticsGormRepository(db)).Execute(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	s := out.Summary
	if s.TotalUsers != 2 || s.TotalProviders != 2 || s.ApprovedProviders != 1 || s.PendingProviders != 1 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if s.TotalBookings != 3 || s.CompletedBookings != 1 || s.TotalRevenue != 1000 {
		t.Fatalf("unexpected booking figures %+v", s)
	}
	if len(out.RecentBookings) != 3 || len(out.BookingsByStatus) != 3 {
		t.Fatalf("unexpected lists %d/%d", len(out.RecentBookings), len(out.BookingsByStatus))
	}
	if len(out.PopularServices) != 2 || out.PopularServices[0].ServiceName != "Wiring" || out.PopularServices[0].Bookings != 2 {
		t.Fatalf("unexpected popular services %+v", out.PopularServices)
	}
}

func TestProviderDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	c := testutil.SeedUser(t, db, "c@example.com", role.Customer)
	pu, p := testutil.SeedProvider(t, db, "p@example.com", 200, true)
	s := testutil.SeedService(t, db, "Wiring", models.CategoryElectrician)

	testutil.SeedBooking(t, db, c.ID, p.ID, s.ID, "COMPLETED", "COMPLETED")
	testutil.SeedBooking(t, db, c.ID, p.ID, s.ID, "COMPLETED", "PENDING")
	testutil.SeedBooking(t, db, c.ID, p.ID, s.ID, "PENDING", "PENDING")

	uc := NewProviderDashboard(repository.NewAnalyticsGormRepository(db))
	out, err := uc.Execute(ctx, pu.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if out.Stats.TotalBookings != 3 || out.Stats.CompletedBookings != 2 || out.Stats.TotalEarnings != 1000 {
		t.Fatalf("unexpected stats %+v", out.Stats)
	}
	if len(out.RecentBookings) != 3 {
		t.Fatalf("expected 3 recent bookings, got %d", len(out.RecentBookings))
	}

	if _, err := uc.Execute(ctx, c.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found for non provider, got %v", err)
	}
}
