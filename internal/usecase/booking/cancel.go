package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	"github.com/BruksfildServices01/eventgenie/internal/auth"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

var ErrNotBookingOwner = httperr.Denied("not_booking_owner", "You can only cancel your own bookings")

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	actor auth.Principal,
	serviceID uuid.UUID,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	ctx, span := tracer.Start(ctx, "CancelBooking")
	defer span.End()

	if _, err := uc.repo.GetService(ctx, serviceID); err != nil {
		return nil, fail(span, notFound(err, domain.ErrServiceNotFound))
	}

	b, err := uc.repo.GetBooking(ctx, serviceID, bookingID)
	if err != nil {
		return nil, fail(span, notFound(err, domain.ErrBookingNotFound))
	}

	if !actor.CanActAs(b.CustomerID) {
		return nil, fail(span, ErrNotBookingOwner)
	}

	if err := domain.Cancel(b, uc.now()); err != nil {
		return nil, fail(span, err)
	}

	if err := uc.repo.CancelBooking(ctx, b); err != nil {
		return nil, fail(span, err)
	}

	slog.InfoContext(ctx, "booking cancelled",
		"booking_id", b.ID,
		"service_id", serviceID,
		"date", b.BookedForDate,
	)

	uc.audit.Dispatch(audit.Event{
		ActorID:   actor.ID.String(),
		ActorRole: actor.Role,
		Action:    "booking_cancelled",
		Entity:    "booking",
		EntityID:  b.ID.String(),
	})

	return b, nil
}
