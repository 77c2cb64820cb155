package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventgenie/internal/models"
)

// CancellationWindow is the minimum notice before the booked date. Exactly
// 48h is still accepted.
const CancellationWindow = 48 * time.Hour

// ===============================
// Domain Actions
// ===============================

// New builds a pending booking with a snapshot of the customer's contact data.
func New(customer *models.Customer, serviceID uuid.UUID, date string, now time.Time) *models.Booking {
	return &models.Booking{
		ID:            uuid.New(),
		ServiceID:     serviceID,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		BookedForDate: date,
		DateBooked:    now,
		Status:        string(InitialStatus()),
	}
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	start, err := EventStart(b.BookedForDate)
	if err != nil {
		return InvalidDate(b.BookedForDate)
	}

	if start.Sub(now) < CancellationWindow {
		return ErrTooLateToCancel
	}

	b.Status = string(StatusCancelled)
	return nil
}
