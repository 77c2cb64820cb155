package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

// lockWait bounds how long a booking waits for another commit on the same
// service and date.
const lockWait = 5 * time.Second

// ======================================================
// INPUT
// ======================================================

type BookServiceInput struct {
	CustomerID uuid.UUID
	ServiceID  uuid.UUID
	Date       string
}

// ======================================================
// USE CASE
// ======================================================

type BookService struct {
	repo   domain.Repository
	locker domain.Locker
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewBookService(
	repo domain.Repository,
	locker domain.Locker,
	audit *audit.Dispatcher,
) *BookService {
	return &BookService{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookService) Execute(
	ctx context.Context,
	in BookServiceInput,
) (*models.Booking, *models.Service, error) {

	ctx, span := tracer.Start(ctx, "BookService")
	defer span.End()
	span.SetAttributes(
		attribute.String("service.id", in.ServiceID.String()),
		attribute.String("booking.date", in.Date),
	)

	if !domain.ValidDate(in.Date) {
		return nil, nil, fail(span, domain.InvalidDate(in.Date))
	}

	customer, err := uc.repo.GetCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, nil, fail(span, notFound(err, domain.ErrCustomerNotFound))
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, nil, fail(span, notFound(err, domain.ErrServiceNotFound))
	}

	// --------------------------------------------------
	// read copy check
	// --------------------------------------------------
	if err := domain.CheckBookable(svc, in.Date); err != nil {
		return nil, nil, fail(span, err)
	}

	b, err := uc.commit(ctx, customer, svc, in.Date, uc.now())
	if err != nil {
		return nil, nil, fail(span, err)
	}

	return b, svc, nil
}

// commit re-checks availability under the date lock and the service row lock
// and writes the booking stamped with at. Any conflict found here is reported
// as "no longer available".
func (uc *BookService) commit(
	ctx context.Context,
	customer *models.Customer,
	svc *models.Service,
	date string,
	at time.Time,
) (*models.Booking, error) {

	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	unlock, err := uc.locker.Lock(lockCtx, domain.LockKey(svc.ID, date))
	cancel()
	if err != nil {
		slog.WarnContext(ctx, "booking lock not acquired",
			"service_id", svc.ID,
			"date", date,
			"error", err,
		)
		return nil, domain.ErrBookingBusy
	}
	defer unlock()

	b := domain.New(customer, svc.ID, date, at)

	err = uc.repo.CommitBooking(ctx, b, func(fresh *models.Service) error {
		if domain.CheckBookable(fresh, date) != nil {
			return domain.NoLongerAvailable(svc.Name, date)
		}
		return nil
	})
	switch {
	case err == nil:
	case httperr.IsUniqueViolation(err):
		return nil, domain.NoLongerAvailable(svc.Name, date)
	default:
		return nil, notFound(err, domain.ErrServiceNotFound)
	}

	slog.InfoContext(ctx, "service booked",
		"booking_id", b.ID,
		"service_id", svc.ID,
		"customer_id", customer.ID,
		"date", date,
	)

	uc.audit.Dispatch(audit.Event{
		ActorID:   customer.ID.String(),
		ActorRole: "customer",
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  b.ID.String(),
		Metadata: map[string]any{
			"serviceId":     svc.ID,
			"bookedForDate": date,
		},
	})

	return b, nil
}
