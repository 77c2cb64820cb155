package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/auth"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/dto"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/middleware"
	"github.com/BruksfildServices01/eventgenie/internal/models"
	ucBooking "github.com/BruksfildServices01/eventgenie/internal/usecase/booking"
	"github.com/BruksfildServices01/eventgenie/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type CustomerHandler struct {
	db *gorm.DB

	book     *ucBooking.BookService
	bulk     *ucBooking.BulkBookServices
	cancel   *ucBooking.CancelBooking
	review   *ucBooking.AddReview
	sessions *ucBooking.CustomerBookings
}

func NewCustomerHandler(
	db *gorm.DB,
	book *ucBooking.BookService,
	bulk *ucBooking.BulkBookServices,
	cancel *ucBooking.CancelBooking,
	review *ucBooking.AddReview,
	sessions *ucBooking.CustomerBookings,
) *CustomerHandler {
	return &CustomerHandler{
		db:       db,
		book:     book,
		bulk:     bulk,
		cancel:   cancel,
		review:   review,
		sessions: sessions,
	}
}

// --------- Requests ---------

type BookServiceRequest struct {
	BookedForDate string `json:"bookedForDate" binding:"required"`
}

type BulkBookRequest struct {
	Services []struct {
		ServiceID     string `json:"serviceId"`
		BookedForDate string `json:"bookedForDate"`
	} `json:"services"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating"` // range checked by AddReview
	Comment string `json:"comment" binding:"required"`
}

type UpdateCustomerRequest struct {
	Username     *string `json:"username,omitempty"`
	Password     *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
}

// --------- Booking ---------

func (h *CustomerHandler) BookService(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceId")
	if !ok {
		return
	}

	var req BookServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	b, svc, err := h.book.Execute(c.Request.Context(), ucBooking.BookServiceInput{
		CustomerID: customerID,
		ServiceID:  serviceID,
		Date:       strings.TrimSpace(req.BookedForDate),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service booked successfully",
		"booking": dto.BookingDTO{
			ID:            b.ID,
			ServiceID:     b.ServiceID,
			ServiceName:   svc.Name,
			BookedForDate: b.BookedForDate,
			DateBooked:    b.DateBooked,
			Status:        b.Status,
		},
	})
}

func (h *CustomerHandler) BulkBook(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}

	var req BulkBookRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]ucBooking.BulkItem, 0, len(req.Services))
	for _, s := range req.Services {
		// unparsable ids become uuid.Nil and fail validation as missing
		id, _ := uuid.Parse(strings.TrimSpace(s.ServiceID))
		items = append(items, ucBooking.BulkItem{
			ServiceID: id,
			RawID:     s.ServiceID,
			Date:      strings.TrimSpace(s.BookedForDate),
		})
	}

	res, err := h.bulk.Execute(c.Request.Context(), customerID, items)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CustomerHandler) CancelBooking(c *gin.Context) {
	serviceID, ok := uuidParam(c, "serviceId")
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "bookingId")
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), middleware.Principal(c), serviceID, bookingID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking canceled successfully",
		"booking": b,
	})
}

func (h *CustomerHandler) AddReview(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceId")
	if !ok {
		return
	}

	var req AddReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.review.Execute(c.Request.Context(), ucBooking.AddReviewInput{
		CustomerID: customerID,
		ServiceID:  serviceID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review added successfully",
		"review":  review,
	})
}

// --------- History ---------

func (h *CustomerHandler) BookedServices(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}

	var customer models.Customer
	if err := h.db.WithContext(c.Request.Context()).
		Preload("BookedServices").
		Preload("BookedServices.Reviews").
		First(&customer, "id = ?", customerID).Error; err != nil {
		httperr.Respond(c, orMissing(err, domain.ErrCustomerNotFound))
		return
	}

	views := make([]dto.ServiceView, 0, len(customer.BookedServices))
	for i := range customer.BookedServices {
		views = append(views, ucBooking.View(&customer.BookedServices[i], ""))
	}

	c.JSON(http.StatusOK, views)
}

func (h *CustomerHandler) DetailedBookings(c *gin.Context) {
	customerID, ok := uuidParam(c, "customerId")
	if !ok {
		return
	}

	sessions, err := h.sessions.Execute(c.Request.Context(), customerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// --------- Profile ---------

func (h *CustomerHandler) GetProfile(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := h.db.WithContext(c.Request.Context()).
		Preload("BookedServices").
		First(&customer, "id = ?", id).Error; err != nil {
		httperr.Respond(c, orMissing(err, domain.ErrCustomerNotFound))
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", id).Error; err != nil {
		httperr.Respond(c, orMissing(err, domain.ErrCustomerNotFound))
		return
	}

	var req UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if taken, err := usernameTaken(h.db, username, customer.ID); err != nil {
			httperr.Respond(c, err)
			return
		} else if taken {
			httperr.BadRequest(c, "username_taken", "Username already exists")
			return
		}
		customer.Username = username
	}

	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if taken, err := emailTaken(h.db, &models.Customer{}, email, customer.ID); err != nil {
			httperr.Respond(c, err)
			return
		} else if taken {
			httperr.BadRequest(c, "email_taken", "Email already registered")
			return
		}
		customer.Email = email
	}

	if req.Phone != nil {
		if !validators.IsPhoneValid(*req.Phone) {
			httperr.BadRequest(c, "invalid_phone", "Please provide a valid phone number")
			return
		}
		customer.Phone = strings.TrimSpace(*req.Phone)
	}

	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", err.Error())
			return
		}
		customer.PasswordHash = hash
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.ProfilePhoto != nil {
		customer.ProfilePhoto = *req.ProfilePhoto
	}

	if err := h.db.Save(&customer).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile updated successfully",
		"customer": customer,
	})
}
