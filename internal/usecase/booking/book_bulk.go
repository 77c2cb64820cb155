package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

const (
	PhaseValidation = "validation"
	PhaseCommit     = "commit"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type BulkItem struct {
	ServiceID uuid.UUID
	RawID     string // as sent by the client, reported back on failures
	Date      string
}

type ValidationResult struct {
	ServiceID     string `json:"serviceId"`
	ServiceName   string `json:"serviceName,omitempty"`
	BookedForDate string `json:"bookedForDate"`
	Available     bool   `json:"available"`
	Error         string `json:"error,omitempty"`
}

type BulkSuccess struct {
	ServiceID     uuid.UUID `json:"serviceId"`
	ServiceName   string    `json:"serviceName"`
	BookedForDate string    `json:"bookedForDate"`
	BookingID     uuid.UUID `json:"bookingId"`
	Status        string    `json:"status"`
}

type BulkFailure struct {
	ServiceID     string `json:"serviceId"`
	ServiceName   string `json:"serviceName,omitempty"`
	BookedForDate string `json:"bookedForDate"`
	Error         string `json:"error"`
	Phase         string `json:"phase"`
}

type BulkResult struct {
	Message            string             `json:"message"`
	Results            []BulkSuccess      `json:"results"`
	ValidationResults  []ValidationResult `json:"validationResults"`
	Errors             []BulkFailure      `json:"errors"`
	TotalRequested     int                `json:"totalRequested"`
	SuccessfullyBooked int                `json:"successfullyBooked"`
	FailedBookings     int                `json:"failedBookings"`
}

// ======================================================
// USE CASE
// ======================================================

// BulkBookServices books several (service, date) pairs for one customer.
// Items succeed or fail independently and successes are never rolled back.
type BulkBookServices struct {
	single *BookService
}

func NewBulkBookServices(single *BookService) *BulkBookServices {
	return &BulkBookServices{single: single}
}

type candidate struct {
	item BulkItem
	svc  *models.Service
}

func (uc *BulkBookServices) Execute(
	ctx context.Context,
	customerID uuid.UUID,
	items []BulkItem,
) (*BulkResult, error) {

	ctx, span := tracer.Start(ctx, "BulkBookServices")
	defer span.End()
	span.SetAttributes(attribute.Int("bulk.requested", len(items)))

	if len(items) == 0 {
		return nil, fail(span, domain.ErrEmptyBulkRequest)
	}

	repo := uc.single.repo

	customer, err := repo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fail(span, notFound(err, domain.ErrCustomerNotFound))
	}

	res := &BulkResult{
		Results:           []BulkSuccess{},
		ValidationResults: make([]ValidationResult, 0, len(items)),
		Errors:            []BulkFailure{},
		TotalRequested:    len(items),
	}

	// --------------------------------------------------
	// Phase 1: validation, no writes
	// --------------------------------------------------
	var valid []candidate
	for _, it := range items {
		vr := ValidationResult{ServiceID: it.RawID, BookedForDate: it.Date}

		svc, err := uc.validate(ctx, it)
		if svc != nil {
			vr.ServiceName = svc.Name
		}
		if err != nil {
			vr.Error = err.Error()
			res.ValidationResults = append(res.ValidationResults, vr)
			res.Errors = append(res.Errors, BulkFailure{
				ServiceID:     it.RawID,
				ServiceName:   vr.ServiceName,
				BookedForDate: it.Date,
				Error:         err.Error(),
				Phase:         PhaseValidation,
			})
			continue
		}

		vr.Available = true
		res.ValidationResults = append(res.ValidationResults, vr)
		valid = append(valid, candidate{item: it, svc: svc})
	}

	if len(valid) == 0 {
		be := domain.ErrNothingBookable.With("validationResults", res.ValidationResults)
		return nil, fail(span, be)
	}

	// --------------------------------------------------
	// Phase 2: commit each validated item
	// --------------------------------------------------
	// one dateBooked for the whole request so history shows it as one session
	bookedAt := uc.single.now()
	for _, c := range valid {
		b, err := uc.single.commit(ctx, customer, c.svc, c.item.Date, bookedAt)
		if err != nil {
			if _, ok := httperr.AsBusiness(err); !ok {
				err = domain.NoLongerAvailable(c.svc.Name, c.item.Date)
			}
			res.Errors = append(res.Errors, BulkFailure{
				ServiceID:     c.item.RawID,
				ServiceName:   c.svc.Name,
				BookedForDate: c.item.Date,
				Error:         err.Error(),
				Phase:         PhaseCommit,
			})
			continue
		}

		res.Results = append(res.Results, BulkSuccess{
			ServiceID:     c.svc.ID,
			ServiceName:   c.svc.Name,
			BookedForDate: b.BookedForDate,
			BookingID:     b.ID,
			Status:        b.Status,
		})
	}

	res.SuccessfullyBooked = len(res.Results)
	res.FailedBookings = res.TotalRequested - res.SuccessfullyBooked
	res.Message = successMessage(res.SuccessfullyBooked, res.TotalRequested)

	span.SetAttributes(attribute.Int("bulk.booked", res.SuccessfullyBooked))
	return res, nil
}

func (uc *BulkBookServices) validate(ctx context.Context, it BulkItem) (*models.Service, error) {
	if it.ServiceID == uuid.Nil {
		return nil, domain.ErrServiceNotFound
	}
	if !domain.ValidDate(it.Date) {
		return nil, domain.InvalidDate(it.Date)
	}

	svc, err := uc.single.repo.GetService(ctx, it.ServiceID)
	if err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}

	if err := domain.CheckBookable(svc, it.Date); err != nil {
		return svc, err
	}
	return svc, nil
}

func successMessage(booked, total int) string {
	return fmt.Sprintf("Successfully booked %d out of %d services", booked, total)
}
