package booking

import (
	"net/http"

	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

var (
	ErrCustomerNotFound = httperr.Missing("customer_not_found", "Customer not found")
	ErrServiceNotFound  = httperr.Missing("service_not_found", "Service not found")
	ErrBookingNotFound  = httperr.Missing("booking_not_found", "Booking not found")

	ErrAlreadyCancelled = httperr.Conflict("already_cancelled", "Booking already canceled")
	ErrTooLateToCancel  = httperr.Conflict("too_late_to_cancel", "Cannot cancel booking within 48 hours of the event date")

	ErrEmptyBulkRequest = httperr.Conflict("empty_services", "Services array is required and cannot be empty")
	ErrNothingBookable  = httperr.Conflict("nothing_available", "No services are available for the selected date")
	ErrEmptyBlockInput  = httperr.Conflict("invalid_request", "serviceIds and dates must be non-empty arrays")

	ErrNotBookedByCustomer = httperr.Denied("not_booked", "You can only review services you have booked")
	ErrAlreadyReviewed     = httperr.Conflict("already_reviewed", "You have already reviewed this service")
	ErrNotServiceOwner     = httperr.Denied("not_owner", "You can only manage your own services")

	// ErrBookingBusy means the date lock could not be taken in time.
	ErrBookingBusy = httperr.BusinessError{
		Code:    "booking_busy",
		Message: "This date is being booked by someone else, please try again",
		Status:  http.StatusServiceUnavailable,
	}
)

func InvalidDate(date string) error {
	return httperr.Conflict("invalid_date", "Date must use the YYYY-MM-DD format").
		With("date", date)
}

func AlreadyBooked(svc *models.Service, date string) error {
	return httperr.Conflict("date_already_booked", "This date is already booked for this service").
		With("serviceName", svc.Name).
		With("bookedForDate", date)
}

func DateBlocked(svc *models.Service, date string) error {
	return httperr.Conflict("date_blocked", "This date is blocked for this service").
		With("serviceName", svc.Name).
		With("bookedForDate", date)
}

func NoLongerAvailable(serviceName, date string) error {
	return httperr.Conflict("no_longer_available", "Service is no longer available for this date").
		With("serviceName", serviceName).
		With("bookedForDate", date)
}
