package booking

import (
	"context"
	"slices"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/dto"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

// CustomerBookings returns a customer's bookings grouped into sessions of
// identical dateBooked, newest session first.
type CustomerBookings struct {
	repo domain.Repository
}

func NewCustomerBookings(repo domain.Repository) *CustomerBookings {
	return &CustomerBookings{repo: repo}
}

func (uc *CustomerBookings) Execute(
	ctx context.Context,
	customerID uuid.UUID,
) ([]dto.BookingSession, error) {

	ctx, span := tracer.Start(ctx, "CustomerBookings")
	defer span.End()

	customer, err := uc.repo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fail(span, notFound(err, domain.ErrCustomerNotFound))
	}

	bookings, err := uc.repo.ListCustomerBookings(ctx, customerID)
	if err != nil {
		return nil, fail(span, err)
	}

	return GroupSessions(bookings, customer.Username), nil
}

func GroupSessions(bookings []models.Booking, username string) []dto.BookingSession {
	var sessions []dto.BookingSession
	index := map[int64]int{}

	for i := range bookings {
		b := &bookings[i]
		key := b.DateBooked.UnixNano()

		pos, ok := index[key]
		if !ok {
			pos = len(sessions)
			index[key] = pos
			sessions = append(sessions, dto.BookingSession{DateBooked: b.DateBooked})
		}
		sessions[pos].Bookings = append(sessions[pos].Bookings, customerBooking(b, username))
	}

	slices.SortStableFunc(sessions, func(a, b dto.BookingSession) int {
		return b.DateBooked.Compare(a.DateBooked)
	})

	if sessions == nil {
		sessions = []dto.BookingSession{}
	}
	return sessions
}

func customerBooking(b *models.Booking, username string) dto.CustomerBookingDTO {
	out := dto.CustomerBookingDTO{
		BookingDTO: dto.BookingDTO{
			ID:            b.ID,
			ServiceID:     b.ServiceID,
			BookedForDate: b.BookedForDate,
			DateBooked:    b.DateBooked,
			Status:        b.Status,
		},
	}

	// the service may have been deleted since
	if svc := b.Service; svc != nil {
		out.ServiceName = svc.Name
		out.Category = svc.Category
		out.Price = svc.Price
		out.Provider = svc.Provider
		out.Address = svc.Address
		out.Images = svc.Images
		for _, r := range svc.Reviews {
			if r.User == username {
				out.HasReviewed = true
				break
			}
		}
	}
	return out
}

// VendorBookings lists every booking on the vendor's services, newest first.
type VendorBookings struct {
	repo domain.Repository
}

func NewVendorBookings(repo domain.Repository) *VendorBookings {
	return &VendorBookings{repo: repo}
}

func (uc *VendorBookings) Execute(
	ctx context.Context,
	vendorUsername string,
) ([]dto.VendorBookingDTO, error) {

	ctx, span := tracer.Start(ctx, "VendorBookings")
	defer span.End()

	bookings, err := uc.repo.ListVendorBookings(ctx, vendorUsername)
	if err != nil {
		return nil, fail(span, err)
	}

	out := make([]dto.VendorBookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, VendorBooking(&bookings[i]))
	}
	return out, nil
}

func VendorBooking(b *models.Booking) dto.VendorBookingDTO {
	out := dto.VendorBookingDTO{
		BookingDTO: dto.BookingDTO{
			ID:            b.ID,
			ServiceID:     b.ServiceID,
			BookedForDate: b.BookedForDate,
			DateBooked:    b.DateBooked,
			Status:        b.Status,
		},
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
	}
	if svc := b.Service; svc != nil {
		out.ServiceName = svc.Name
		out.Category = svc.Category
		out.Price = svc.Price
	}
	return out
}

// Stats summarises bookings for admin views. Revenue counts confirmed
// bookings at the service's current price.
func Stats(bookings []models.Booking, priceOf func(b *models.Booking) float64) dto.ServiceStats {
	var s dto.ServiceStats
	for i := range bookings {
		b := &bookings[i]
		s.TotalBookings++
		switch domain.Status(b.Status) {
		case domain.StatusPending:
			s.PendingBookings++
		case domain.StatusConfirmed:
			s.ConfirmedBookings++
			s.TotalRevenue += priceOf(b)
		case domain.StatusCancelled:
			s.CancelledBookings++
		}
	}
	return s
}
