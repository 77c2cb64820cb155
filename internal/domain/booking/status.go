package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// InitialStatus is the status of every new booking. Nothing moves a booking
// from pending to confirmed yet.
func InitialStatus() Status {
	return StatusPending
}

func (s Status) Active() bool {
	return s != StatusCancelled
}

// CanCancel rejects bookings that are already cancelled.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return ErrAlreadyCancelled
	}
	return nil
}
