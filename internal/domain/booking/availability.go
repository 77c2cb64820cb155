package booking

import (
	"slices"

	"github.com/BruksfildServices01/eventgenie/internal/models"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "Available"
	AvailabilityBooked      AvailabilityStatus = "Booked"
	AvailabilityBlocked     AvailabilityStatus = "Blocked"
	AvailabilityNoDateGiven AvailabilityStatus = "Date not selected"
)

// HasActiveBooking compares dates as plain strings.
func HasActiveBooking(svc *models.Service, date string) bool {
	for _, b := range svc.Bookings {
		if b.BookedForDate == date && Status(b.Status).Active() {
			return true
		}
	}
	return false
}

func IsBlockedDate(svc *models.Service, date string) bool {
	return slices.Contains(svc.BlockedDates, date)
}

// IsAvailable treats an empty date as available so that browsing without a
// date shows every service as bookable.
func IsAvailable(svc *models.Service, date string) bool {
	if date == "" {
		return true
	}
	return !HasActiveBooking(svc, date) && !IsBlockedDate(svc, date)
}

// StatusOn reports why a service is or is not bookable; a block wins over a
// booking on the same date.
func StatusOn(svc *models.Service, date string) AvailabilityStatus {
	switch {
	case date == "":
		return AvailabilityNoDateGiven
	case IsBlockedDate(svc, date):
		return AvailabilityBlocked
	case HasActiveBooking(svc, date):
		return AvailabilityBooked
	default:
		return AvailabilityAvailable
	}
}

// CheckBookable is the rule applied before a booking is written. It returns
// nil, AlreadyBooked or DateBlocked.
func CheckBookable(svc *models.Service, date string) error {
	if HasActiveBooking(svc, date) {
		return AlreadyBooked(svc, date)
	}
	if IsBlockedDate(svc, date) {
		return DateBlocked(svc, date)
	}
	return nil
}
