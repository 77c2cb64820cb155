package booking

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

// memRepo keeps everything in maps and mirrors the storage guarantees the
// gorm repository gives: one live booking per service and date, one review
// per service and user.
type memRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]models.Customer
	services  map[uuid.UUID]models.Service
	bookings  []models.Booking
	reviews   []models.Review
	links     map[[2]uuid.UUID]bool

	// beforeCommit runs inside CommitBooking before the guard, standing in
	// for a competing request that committed first.
	beforeCommit func(b *models.Booking)
}

var _ domain.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		customers: map[uuid.UUID]models.Customer{},
		services:  map[uuid.UUID]models.Service{},
		links:     map[[2]uuid.UUID]bool{},
	}
}

func (r *memRepo) addCustomer(name string) models.Customer {
	c := models.Customer{
		ID:       uuid.New(),
		Username: strings.ToLower(name),
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Phone:    "+919876543210",
	}
	r.customers[c.ID] = c
	return c
}

func (r *memRepo) addService(name, vendor string, price float64) models.Service {
	s := models.Service{
		ID:             uuid.New(),
		Name:           name,
		VendorUsername: vendor,
		Price:          price,
		Category:       models.CategoryVenue,
	}
	r.services[s.ID] = s
	return s
}

func (r *memRepo) load(id uuid.UUID) (*models.Service, bool) {
	s, ok := r.services[id]
	if !ok {
		return nil, false
	}
	s.BlockedDates = slices.Clone(s.BlockedDates)
	s.Bookings = nil
	for _, b := range r.bookings {
		if b.ServiceID == id {
			s.Bookings = append(s.Bookings, b)
		}
	}
	s.Reviews = nil
	for _, rv := range r.reviews {
		if rv.ServiceID == id {
			s.Reviews = append(s.Reviews, rv)
		}
	}
	return &s, true
}

func (r *memRepo) GetCustomer(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memRepo) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.load(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *memRepo) ListServices(_ context.Context, f domain.ServiceFilter) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Service
	for id, s := range r.services {
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.FoodType != "" && s.FoodType != f.FoodType {
			continue
		}
		if f.MinPrice != nil && s.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && s.Price > *f.MaxPrice {
			continue
		}
		if f.VendorUsername != "" && s.VendorUsername != f.VendorUsername {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Search)) {
			continue
		}
		full, _ := r.load(id)
		out = append(out, *full)
	}
	slices.SortFunc(out, func(a, b models.Service) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *memRepo) CommitBooking(_ context.Context, b *models.Booking, guard func(*models.Service) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.beforeCommit != nil {
		hook := r.beforeCommit
		r.beforeCommit = nil
		hook(b)
	}

	s, ok := r.load(b.ServiceID)
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if err := guard(s); err != nil {
		return err
	}
	for _, existing := range r.bookings {
		if existing.ServiceID == b.ServiceID && existing.BookedForDate == b.BookedForDate &&
			existing.Status != string(domain.StatusCancelled) {
			return gorm.ErrDuplicatedKey
		}
	}

	r.bookings = append(r.bookings, *b)
	r.links[[2]uuid.UUID{b.CustomerID, b.ServiceID}] = true
	return nil
}

func (r *memRepo) GetBooking(_ context.Context, serviceID, bookingID uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == bookingID && b.ServiceID == serviceID {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) CancelBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			if r.bookings[i].Status == string(domain.StatusCancelled) {
				return domain.ErrAlreadyCancelled
			}
			r.bookings[i].Status = string(domain.StatusCancelled)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memRepo) ListCustomerBookings(_ context.Context, customerID uuid.UUID) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			b.Service, _ = r.load(b.ServiceID)
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) ListVendorBookings(_ context.Context, vendor string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if s, ok := r.services[b.ServiceID]; ok && s.VendorUsername == vendor {
			b.Service = &s
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateBlockedDates(_ context.Context, id uuid.UUID, fn func([]string) []string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.BlockedDates = fn(slices.Clone(s.BlockedDates))
	r.services[id] = s
	return &s, nil
}

func (r *memRepo) HasBookedService(_ context.Context, customerID, serviceID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.links[[2]uuid.UUID{customerID, serviceID}], nil
}

func (r *memRepo) CreateReview(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.ServiceID == rv.ServiceID && existing.User == rv.User {
			return gorm.ErrDuplicatedKey
		}
	}
	r.reviews = append(r.reviews, *rv)
	return nil
}

func (r *memRepo) activeBookings(serviceID uuid.UUID, date string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bookings {
		if b.ServiceID == serviceID && b.BookedForDate == date && b.Status != string(domain.StatusCancelled) {
			n++
		}
	}
	return n
}
