package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/dto"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/middleware"
	"github.com/BruksfildServices01/eventgenie/internal/models"
	ucBooking "github.com/BruksfildServices01/eventgenie/internal/usecase/booking"
)

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: audit}
}

func priceFromService(b *models.Booking) float64 {
	if b.Service == nil {
		return 0
	}
	return b.Service.Price
}

// --------- Vendors ---------

func (h *AdminHandler) Vendors(c *gin.Context) {
	h.listVendors(c, "")
}

func (h *AdminHandler) PendingVendors(c *gin.Context) {
	h.listVendors(c, models.VendorStatusPending)
}

func (h *AdminHandler) listVendors(c *gin.Context, status string) {
	q := h.db.WithContext(c.Request.Context()).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var vendors []models.Vendor
	if err := q.Find(&vendors).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (h *AdminHandler) VendorDetail(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var vendor models.Vendor
	if err := h.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		httperr.Respond(c, orMissing(err, errVendorNotFound))
		return
	}

	var services []models.Service
	if err := h.db.WithContext(ctx).
		Preload("Reviews").
		Where("vendor_username = ?", vendor.Username).
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var bookings []models.Booking
	if err := h.db.WithContext(ctx).
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.vendor_username = ?", vendor.Username).
		Preload("Service").
		Find(&bookings).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor":   vendor,
		"services": services,
		"stats":    ucBooking.Stats(bookings, priceFromService),
	})
}

func (h *AdminHandler) ApproveVendor(c *gin.Context) {
	h.setVendorStatus(c, models.VendorStatusAccepted, "Vendor approved successfully")
}

func (h *AdminHandler) RejectVendor(c *gin.Context) {
	h.setVendorStatus(c, models.VendorStatusRejected, "Vendor rejected successfully")
}

func (h *AdminHandler) setVendorStatus(c *gin.Context, status, message string) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ?", id).Error; err != nil {
		httperr.Respond(c, orMissing(err, errVendorNotFound))
		return
	}

	if err := h.db.Model(&vendor).Update("status", status).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	p := middleware.Principal(c)
	h.audit.Dispatch(audit.Event{
		ActorID:   p.ID.String(),
		ActorRole: p.Role,
		Action:    "vendor_" + status,
		Entity:    "vendor",
		EntityID:  vendor.ID.String(),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"vendor":  vendor,
	})
}

// --------- Customers ---------

func (h *AdminHandler) Customers(c *gin.Context) {
	var customers []models.Customer
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *AdminHandler) CustomerDetail(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var customer models.Customer
	if err := h.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		httperr.Respond(c, orMissing(err, domain.ErrCustomerNotFound))
		return
	}

	var bookings []models.Booking
	if err := h.db.WithContext(ctx).
		Preload("Service").
		Where("customer_id = ?", customer.ID).
		Order("date_booked DESC").
		Find(&bookings).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"bookings": vendorBookings(bookings),
		"stats":    ucBooking.Stats(bookings, priceFromService),
	})
}

// --------- Services ---------

func (h *AdminHandler) Services(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Reviews").
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	views := make([]dto.ServiceView, 0, len(services))
	for i := range services {
		views = append(views, ucBooking.View(&services[i], ""))
	}
	c.JSON(http.StatusOK, views)
}

func (h *AdminHandler) ServiceDetail(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Reviews").
		Preload("Bookings", func(db *gorm.DB) *gorm.DB { return db.Order("date_booked DESC") }).
		First(&svc, "id = ?", id).Error; err != nil {
		httperr.Respond(c, orMissing(err, domain.ErrServiceNotFound))
		return
	}

	price := svc.Price
	c.JSON(http.StatusOK, gin.H{
		"service": svc,
		"stats":   ucBooking.Stats(svc.Bookings, func(*models.Booking) float64 { return price }),
	})
}

// --------- Bookings ---------

func (h *AdminHandler) Bookings(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Preload("Service").Order("date_booked DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if raw := c.Query("serviceId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_query", "Invalid serviceId")
			return
		}
		q = q.Where("service_id = ?", id)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": vendorBookings(bookings),
		"stats":    ucBooking.Stats(bookings, priceFromService),
	})
}

func vendorBookings(bookings []models.Booking) []dto.VendorBookingDTO {
	out := make([]dto.VendorBookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, ucBooking.VendorBooking(&bookings[i]))
	}
	return out
}
