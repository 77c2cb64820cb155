package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*BookingGormRepository)(nil)

// likeEscaper makes user text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *BookingGormRepository) GetCustomer(
	ctx context.Context,
	id uuid.UUID,
) (*models.Customer, error) {

	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Preload("Bookings").
		First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	f domain.ServiceFilter,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).
		Preload("Reviews").
		Preload("Bookings", "status <> ?", string(domain.StatusCancelled))

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.FoodType != "" {
		q = q.Where("food_type = ?", f.FoodType)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.VendorUsername != "" {
		q = q.Where("vendor_username = ?", f.VendorUsername)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		q = q.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(provider) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}

	var out []models.Service
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CommitBooking(
	ctx context.Context,
	b *models.Booking,
	guard func(svc *models.Service) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&svc, "id = ?", b.ServiceID).Error; err != nil {
			return err
		}

		if err := tx.
			Where("service_id = ? AND booked_for_date = ?", b.ServiceID, b.BookedForDate).
			Find(&svc.Bookings).Error; err != nil {
			return err
		}

		if err := guard(&svc); err != nil {
			return err
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		link := models.CustomerBookedService{
			CustomerID: b.CustomerID,
			ServiceID:  b.ServiceID,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	})
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	serviceID uuid.UUID,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_id = ?", bookingID, serviceID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) CancelBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status <> ?", b.ID, string(domain.StatusCancelled)).
		Update("status", string(domain.StatusCancelled))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyCancelled
	}
	return nil
}

func (r *BookingGormRepository) ListCustomerBookings(
	ctx context.Context,
	customerID uuid.UUID,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Service.Reviews").
		Where("customer_id = ?", customerID).
		Order("date_booked DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ListVendorBookings(
	ctx context.Context,
	vendorUsername string,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.vendor_username = ?", vendorUsername).
		Preload("Service").
		Order("bookings.date_booked DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Blocked dates
// --------------------------------------------------

func (r *BookingGormRepository) UpdateBlockedDates(
	ctx context.Context,
	serviceID uuid.UUID,
	fn func(current []string) []string,
) (*models.Service, error) {

	var svc models.Service
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&svc, "id = ?", serviceID).Error; err != nil {
			return err
		}

		svc.BlockedDates = fn(svc.BlockedDates)

		return tx.Model(&svc).Select("BlockedDates").Updates(&svc).Error
	})
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *BookingGormRepository) HasBookedService(
	ctx context.Context,
	customerID uuid.UUID,
	serviceID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerBookedService{}).
		Where("customer_id = ? AND service_id = ?", customerID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) CreateReview(
	ctx context.Context,
	rv *models.Review,
) error {
	return r.db.WithContext(ctx).Create(rv).Error
}
