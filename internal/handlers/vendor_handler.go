package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	"github.com/BruksfildServices01/eventgenie/internal/auth"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/imageproc"
	"github.com/BruksfildServices01/eventgenie/internal/middleware"
	"github.com/BruksfildServices01/eventgenie/internal/models"
	"github.com/BruksfildServices01/eventgenie/internal/storage"
	ucBooking "github.com/BruksfildServices01/eventgenie/internal/usecase/booking"
	"github.com/BruksfildServices01/eventgenie/internal/validators"
)

const maxImageBytes = 10 << 20

var (
	errVendorNotFound = httperr.Missing("vendor_not_found", "Vendor not found")
	errNotYourService = httperr.Denied("not_owner", "You can only edit your own services")
)

// ImageUploader stores an encoded WebP image and returns its public URL.
type ImageUploader interface {
	PutWebP(ctx context.Context, key string, data []byte) (string, error)
}

type VendorHandler struct {
	db       *gorm.DB
	bookings *ucBooking.VendorBookings
	images   ImageUploader
	audit    *audit.Dispatcher
}

// NewVendorHandler accepts a nil uploader; image uploads then answer 503.
func NewVendorHandler(
	db *gorm.DB,
	bookings *ucBooking.VendorBookings,
	images ImageUploader,
	audit *audit.Dispatcher,
) *VendorHandler {
	return &VendorHandler{db: db, bookings: bookings, images: images, audit: audit}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Provider    string   `json:"provider"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"required"`
	FoodType    string   `json:"foodType"`
	Images      []string `json:"images" binding:"required,min=1"`
	Description string   `json:"description" binding:"required"`
	Address     string   `json:"address" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string   `json:"name,omitempty"`
	Provider    *string   `json:"provider,omitempty"`
	Price       *float64  `json:"price,omitempty" binding:"omitempty,gt=0"`
	Category    *string   `json:"category,omitempty"`
	FoodType    *string   `json:"foodType,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty"`
}

type UpdateVendorRequest struct {
	Name         *string   `json:"name,omitempty"`
	BusinessName *string   `json:"businessName,omitempty"`
	Email        *string   `json:"email,omitempty" binding:"omitempty,email"`
	Phone        *string   `json:"phone,omitempty"`
	About        *string   `json:"about,omitempty"`
	ProfilePhoto *string   `json:"profilePhoto,omitempty"`
	Categories   *[]string `json:"categories,omitempty"`
	Password     *string   `json:"password,omitempty" binding:"omitempty,min=6"`
}

// --------- Helpers ---------

func (h *VendorHandler) loadVendor(c *gin.Context) (*models.Vendor, bool) {
	id, ok := uuidParam(c, "vendorId")
	if !ok {
		return nil, false
	}

	var v models.Vendor
	if err := h.db.WithContext(c.Request.Context()).First(&v, "id = ?", id).Error; err != nil {
		httperr.Respond(c, orMissing(err, errVendorNotFound))
		return nil, false
	}
	return &v, true
}

func (h *VendorHandler) loadOwnedService(c *gin.Context, vendor *models.Vendor) (*models.Service, bool) {
	id, ok := uuidParam(c, "serviceId")
	if !ok {
		return nil, false
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&svc, "id = ?", id).Error; err != nil {
		httperr.Respond(c, orMissing(err, domain.ErrServiceNotFound))
		return nil, false
	}
	if svc.VendorUsername != vendor.Username {
		httperr.Respond(c, errNotYourService)
		return nil, false
	}
	return &svc, true
}

func (h *VendorHandler) record(c *gin.Context, action, entity, id string) {
	p := middleware.Principal(c)
	h.audit.Dispatch(audit.Event{
		ActorID:   p.ID.String(),
		ActorRole: p.Role,
		Action:    action,
		Entity:    entity,
		EntityID:  id,
	})
}

func validServiceFields(c *gin.Context, category, foodType string) bool {
	if !models.ValidCategory(category) {
		httperr.BadRequest(c, "invalid_category", "Category must be one of venue, catering, decor, entertainment")
		return false
	}
	if foodType != "" && !models.ValidFoodType(foodType) {
		httperr.BadRequest(c, "invalid_food_type", "foodType must be one of veg, nonveg, both")
		return false
	}
	return true
}

// --------- Profile ---------

func (h *VendorHandler) GetProfile(c *gin.Context) {
	v, ok := h.loadVendor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VendorHandler) UpdateProfile(c *gin.Context) {
	v, ok := h.loadVendor(c)
	if !ok {
		return
	}

	var req UpdateVendorRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if taken, err := emailTaken(h.db, &models.Vendor{}, email, v.ID); err != nil {
			httperr.Respond(c, err)
			return
		} else if taken {
			httperr.BadRequest(c, "email_taken", "Email already registered")
			return
		}
		v.Email = email
	}
	if req.Phone != nil {
		if !validators.IsPhoneValid(*req.Phone) {
			httperr.BadRequest(c, "invalid_phone", "Please provide a valid phone number")
			return
		}
		v.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Categories != nil {
		for _, cat := range *req.Categories {
			if !models.ValidCategory(cat) {
				httperr.BadRequest(c, "invalid_category", "Unknown category "+cat)
				return
			}
		}
		v.Categories = *req.Categories
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", err.Error())
			return
		}
		v.PasswordHash = hash
	}
	if req.Name != nil {
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.BusinessName != nil {
		v.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.About != nil {
		v.About = *req.About
	}
	if req.ProfilePhoto != nil {
		v.ProfilePhoto = *req.ProfilePhoto
	}

	if err := h.db.Save(v).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"vendor":  v,
	})
}

// --------- Services ---------

func (h *VendorHandler) ListServices(c *gin.Context) {
	v, ok := h.loadVendor(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Reviews").
		Preload("Bookings").
		Where("vendor_username = ?", v.Username).
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *VendorHandler) CreateService(c *gin.Context) {
	v, ok := h.loadVendor(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	foodType := strings.ToLower(strings.TrimSpace(req.FoodType))
	if !validServiceFields(c, category, foodType) {
		return
	}
	if foodType == "" {
		foodType = models.FoodTypeBoth
	}

	provider := strings.TrimSpace(req.Provider)
	if provider == "" {
		provider = v.BusinessName
	}

	svc := models.Service{
		Name:           strings.TrimSpace(req.Name),
		Provider:       provider,
		VendorUsername: v.Username,
		Price:          req.Price,
		Category:       category,
		FoodType:       foodType,
		Images:         req.Images,
		Description:    req.Description,
		Address:        req.Address,
		BlockedDates:   []string{},
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, "service_created", "service", svc.ID.String())

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service created successfully",
		"service": svc,
	})
}

func (h *VendorHandler) UpdateService(c *gin.Context) {
	v, ok := h.loadVendor(c)
	if !ok {
		return
	}
	svc, ok := h.loadOwnedService(c, v)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	category := svc.Category
	if req.Category != nil {
		category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	foodType := svc.FoodType
	if req.FoodType != nil {
		foodType = strings.ToLower(strings.TrimSpace(*req.FoodType))
	}
	if !validServiceFields(c, category, foodType) {
		return
	}
	svc.Category = category
	svc.FoodType = foodType

	if req.Images != nil {
		if len(*req.Images) == 0 {
			httperr.BadRequest(c, "images_required", "At least one image is required")
			return
		}
		svc.Images = *req.Images
	}
	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Provider != nil {
		svc.Provider = strings.TrimSpace(*req.Provider)
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Address != nil {
		svc.Address = *req.Address
	}

	// blocked dates are owned by the block endpoints
	if err := h.db.Model(svc).
		Select("Name", "Provider", "Price", "Category", "FoodType", "Images", "Description", "Address").
		Updates(svc).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, "service_updated", "service", svc.ID.String())

	c.JSON(http.StatusOK, gin.H{
		"message": "Service updated successfully",
		"service": svc,
	})
}

func (h *VendorHandler) DeleteService(c *gin.Context) {
	v, ok := h.loadVendor(c)
	if !ok {
		return
	}
	svc, ok := h.loadOwnedService(c, v)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", svc.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(svc).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.record(c, "service_deleted", "service", svc.ID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// --------- Bookings ---------

func (h *VendorHandler) Bookings(c *gin.Context) {
	v, ok := h.loadVendor(c)
	if !ok {
		return
	}

	out, err := h.bookings.Execute(c.Request.Context(), v.Username)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// --------- Images ---------

func (h *VendorHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		httperr.Unavailable(c, "uploads_disabled", "Image uploads are not configured")
		return
	}

	v, ok := h.loadVendor(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "image_required", "Multipart field image is required")
		return
	}
	if fh.Size > maxImageBytes {
		httperr.BadRequest(c, "image_too_large", "Images must be 10MB or smaller")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Internal(c, "image_read_failed", err.Error())
		return
	}
	defer f.Close()

	data, err := imageproc.ToWebP(f)
	if err != nil {
		if errors.Is(err, imageproc.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Upload a png, jpeg or webp image")
			return
		}
		if errors.Is(err, imageproc.ErrImageTooLarge) {
			httperr.BadRequest(c, "image_dimensions_too_large", "Image dimensions are too large")
			return
		}
		httperr.Internal(c, "image_convert_failed", err.Error())
		return
	}

	url, err := h.images.PutWebP(c.Request.Context(), storage.ObjectKey(v.Username), data)
	if err != nil {
		httperr.Internal(c, "image_upload_failed", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
