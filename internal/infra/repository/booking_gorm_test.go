package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventgenie/internal/db"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

func newTestRepo(t *testing.T) (*BookingGormRepository, models.Customer, models.Service) {
	t.Helper()

	gdb, err := db.Open("sqlite", filepath.Join(t.TempDir(), "eventgenie.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	c := models.Customer{
		ID:           uuid.New(),
		Username:     "meera",
		PasswordHash: "x",
		Name:         "Meera",
		Email:        "meera@example.com",
		Phone:        "+919876543210",
	}
	s := models.Service{
		ID:             uuid.New(),
		Name:           "Royal Hall",
		Provider:       "Royal Events",
		VendorUsername: "royal",
		Price:          1500,
		Category:       models.CategoryVenue,
		Description:    "Banquet hall",
		Address:        "MG Road",
	}
	if err := gdb.Create(&c).Error; err != nil {
		t.Fatal(err)
	}
	if err := gdb.Create(&s).Error; err != nil {
		t.Fatal(err)
	}

	return NewBookingGormRepository(gdb), c, s
}

func allow(*models.Service) error { return nil }

func TestCommitBookingAndCancel(t *testing.T) {
	repo, c, s := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	first := domain.New(&c, s.ID, "2025-06-01", now)
	if err := repo.CommitBooking(ctx, first, allow); err != nil {
		t.Fatalf("commit: %v", err)
	}

	booked, err := repo.HasBookedService(ctx, c.ID, s.ID)
	if err != nil || !booked {
		t.Fatalf("booked = %v, err = %v", booked, err)
	}

	// the guard sees the booking just written
	var seen int
	second := domain.New(&c, s.ID, "2025-06-01", now)
	err = repo.CommitBooking(ctx, second, func(svc *models.Service) error {
		seen = len(svc.Bookings)
		return domain.CheckBookable(svc, "2025-06-01")
	})
	if !httperr.IsBusiness(err, "date_already_booked") || seen != 1 {
		t.Fatalf("guarded commit err = %v, seen = %d", err, seen)
	}

	// without the guard the partial unique index still refuses it
	err = repo.CommitBooking(ctx, second, allow)
	if !httperr.IsUniqueViolation(err) {
		t.Fatalf("unguarded duplicate err = %v, want unique violation", err)
	}

	if err := repo.CancelBooking(ctx, first); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := repo.CancelBooking(ctx, first); !httperr.IsBusiness(err, "already_cancelled") {
		t.Fatalf("second cancel err = %v", err)
	}

	// a cancelled booking frees the date; the customer link is not duplicated
	third := domain.New(&c, s.ID, "2025-06-01", now)
	if err := repo.CommitBooking(ctx, third, allow); err != nil {
		t.Fatalf("rebook: %v", err)
	}

	got, err := repo.GetBooking(ctx, s.ID, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "cancelled" {
		t.Fatalf("status = %s", got.Status)
	}

	history, err := repo.ListCustomerBookings(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].Service == nil || history[0].Service.Name != "Royal Hall" {
		t.Fatalf("history = %+v", history)
	}

	vendor, err := repo.ListVendorBookings(ctx, "royal")
	if err != nil {
		t.Fatal(err)
	}
	if len(vendor) != 2 {
		t.Fatalf("vendor bookings = %d, want 2", len(vendor))
	}
}

func TestGetBookingScopedToService(t *testing.T) {
	repo, c, s := newTestRepo(t)
	ctx := context.Background()

	b := domain.New(&c, s.ID, "2025-06-01", time.Now())
	if err := repo.CommitBooking(ctx, b, allow); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetBooking(ctx, uuid.New(), b.ID); err == nil {
		t.Fatal("booking found under another service")
	}
}

func TestUpdateBlockedDates(t *testing.T) {
	repo, _, s := newTestRepo(t)
	ctx := context.Background()

	svc, err := repo.UpdateBlockedDates(ctx, s.ID, func(cur []string) []string {
		return domain.MergeDates(cur, []string{"2025-06-01", "2025-06-02"})
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(svc.BlockedDates) != 2 {
		t.Fatalf("blocked = %v", svc.BlockedDates)
	}

	fresh, err := repo.GetService(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !domain.IsBlockedDate(fresh, "2025-06-02") {
		t.Fatalf("persisted blocked dates = %v", fresh.BlockedDates)
	}

	if _, err := repo.UpdateBlockedDates(ctx, uuid.New(), func(cur []string) []string { return cur }); err == nil {
		t.Fatal("expected error for missing service")
	}
}

func TestListServicesFilters(t *testing.T) {
	repo, _, s := newTestRepo(t)
	ctx := context.Background()

	catering := models.Service{
		ID:             uuid.New(),
		Name:           "Spice Feast",
		Provider:       "Spice Co",
		VendorUsername: "spice",
		Price:          300,
		Category:       models.CategoryCatering,
		FoodType:       models.FoodTypeVeg,
		Description:    "Vegetarian buffet",
		Address:        "Park Street",
	}
	if err := repo.db.Create(&catering).Error; err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		f    domain.ServiceFilter
		want []uuid.UUID
	}{
		{name: "no filter", f: domain.ServiceFilter{}, want: []uuid.UUID{catering.ID, s.ID}},
		{name: "category", f: domain.ServiceFilter{Category: models.CategoryVenue}, want: []uuid.UUID{s.ID}},
		{name: "food type", f: domain.ServiceFilter{FoodType: models.FoodTypeVeg}, want: []uuid.UUID{catering.ID}},
		{name: "price range", f: domain.ServiceFilter{MinPrice: ptr(1000), MaxPrice: ptr(2000)}, want: []uuid.UUID{s.ID}},
		{name: "search is case insensitive", f: domain.ServiceFilter{Search: "BUFFET"}, want: []uuid.UUID{catering.ID}},
		{name: "search matches provider", f: domain.ServiceFilter{Search: "royal events"}, want: []uuid.UUID{s.ID}},
		{name: "search ignores address", f: domain.ServiceFilter{Search: "Park Street"}, want: nil},
		{name: "percent is literal", f: domain.ServiceFilter{Search: "%"}, want: nil},
		{name: "underscore is literal", f: domain.ServiceFilter{Search: "_"}, want: nil},
		{name: "backslash is literal", f: domain.ServiceFilter{Search: `\`}, want: nil},
		{name: "vendor", f: domain.ServiceFilter{VendorUsername: "royal"}, want: []uuid.UUID{s.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListServices(ctx, tt.f)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d services, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("position %d = %s", i, got[i].Name)
				}
			}
		})
	}
}

func TestCreateReviewUnique(t *testing.T) {
	repo, _, s := newTestRepo(t)
	ctx := context.Background()

	rv := &models.Review{ID: uuid.New(), ServiceID: s.ID, User: "meera", Rating: 4, Comment: "Nice", Date: time.Now()}
	if err := repo.CreateReview(ctx, rv); err != nil {
		t.Fatal(err)
	}

	dup := *rv
	dup.ID = uuid.New()
	if err := repo.CreateReview(ctx, &dup); !httperr.IsUniqueViolation(err) {
		t.Fatalf("duplicate review err = %v", err)
	}
}

func ptr(f float64) *float64 { return &f }
