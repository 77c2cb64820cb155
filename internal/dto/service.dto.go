package dto

import "github.com/BruksfildServices01/eventgenie/internal/models"

// ServiceView is a catalog entry annotated with its availability on the
// selected date. Bookings are not exposed.
type ServiceView struct {
	models.Service

	AverageRating      float64 `json:"averageRating"`
	ReviewCount        int     `json:"reviewCount"`
	IsAvailable        bool    `json:"isAvailable"`
	AvailabilityStatus string  `json:"availabilityStatus"`
	SelectedDate       *string `json:"selectedDate"`
}

type ServiceStats struct {
	TotalBookings     int     `json:"totalBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
	CancelledBookings int     `json:"cancelledBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}
