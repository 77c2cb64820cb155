package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookingDTO struct {
	ID            uuid.UUID `json:"id"`
	ServiceID     uuid.UUID `json:"serviceId"`
	ServiceName   string    `json:"serviceName"`
	BookedForDate string    `json:"bookedForDate"`
	DateBooked    time.Time `json:"dateBooked"`
	Status        string    `json:"status"`
}

// CustomerBookingDTO is one line of a customer's booking history.
type CustomerBookingDTO struct {
	BookingDTO

	Category    string   `json:"category,omitempty"`
	Price       float64  `json:"price"`
	Provider    string   `json:"provider,omitempty"`
	Address     string   `json:"address,omitempty"`
	Images      []string `json:"images,omitempty"`
	HasReviewed bool     `json:"hasReviewed"`
}

// BookingSession groups bookings made in the same request.
type BookingSession struct {
	DateBooked time.Time            `json:"dateBooked"`
	Bookings   []CustomerBookingDTO `json:"bookings"`
}

type VendorBookingDTO struct {
	BookingDTO

	CustomerID    uuid.UUID `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
}
