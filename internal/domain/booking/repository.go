package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventgenie/internal/models"
)

// ServiceFilter holds the catalog filters the store can apply itself. Rating
// and date are evaluated on the loaded services.
type ServiceFilter struct {
	Category       string
	FoodType       string
	MinPrice       *float64
	MaxPrice       *float64
	Search         string
	VendorUsername string
}

// Repository returns gorm.ErrRecordNotFound for missing rows.
type Repository interface {
	// -------- Reads --------
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)

	// GetService loads the service with its bookings and reviews.
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)

	ListServices(ctx context.Context, f ServiceFilter) ([]models.Service, error)

	// -------- Bookings --------

	// CommitBooking locks the service, reloads it, runs guard on the fresh
	// copy and, when guard passes, stores b and links the service to the
	// customer in the same transaction.
	CommitBooking(
		ctx context.Context,
		b *models.Booking,
		guard func(svc *models.Service) error,
	) error

	GetBooking(ctx context.Context, serviceID, bookingID uuid.UUID) (*models.Booking, error)

	// CancelBooking flips status to cancelled unless it already is, in which
	// case it returns ErrAlreadyCancelled.
	CancelBooking(ctx context.Context, b *models.Booking) error

	ListCustomerBookings(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error)
	ListVendorBookings(ctx context.Context, vendorUsername string) ([]models.Booking, error)

	// -------- Blocked dates --------

	// UpdateBlockedDates applies fn to the service's blocked dates under a row
	// lock and persists the result.
	UpdateBlockedDates(
		ctx context.Context,
		serviceID uuid.UUID,
		fn func(current []string) []string,
	) (*models.Service, error)

	// -------- Reviews --------
	HasBookedService(ctx context.Context, customerID, serviceID uuid.UUID) (bool, error)
	CreateReview(ctx context.Context, r *models.Review) error
}

// Locker serialises work on one key across processes.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func LockKey(serviceID uuid.UUID, date string) string {
	return fmt.Sprintf("eventgenie:booking:%s:%s", serviceID, date)
}
