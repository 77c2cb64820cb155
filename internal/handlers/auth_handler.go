package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	"github.com/BruksfildServices01/eventgenie/internal/auth"
	"github.com/BruksfildServices01/eventgenie/internal/config"
	"github.com/BruksfildServices01/eventgenie/internal/httperr"
	"github.com/BruksfildServices01/eventgenie/internal/models"
	"github.com/BruksfildServices01/eventgenie/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: audit}
}

// --------- Requests ---------

type RegisterCustomerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
}

type RegisterVendorRequest struct {
	Username     string   `json:"username" binding:"required,min=3,max=100"`
	Password     string   `json:"password" binding:"required,min=6"`
	Name         string   `json:"name" binding:"required"`
	BusinessName string   `json:"businessName" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Phone        string   `json:"phone" binding:"required"`
	About        string   `json:"about"`
	Categories   []string `json:"categories"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Helpers ---------

// usernameTaken checks both account namespaces. except skips the caller's own
// record on profile updates.
func usernameTaken(db *gorm.DB, username string, except uuid.UUID) (bool, error) {
	var count int64
	if err := db.Model(&models.Customer{}).
		Where("username = ? AND id <> ?", username, except).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := db.Model(&models.Vendor{}).
		Where("username = ? AND id <> ?", username, except).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func emailTaken(db *gorm.DB, model any, email string, except uuid.UUID) (bool, error) {
	var count int64
	if err := db.Model(model).
		Where("email = ? AND id <> ?", email, except).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// checkContact validates e-mail and phone and writes the 400 itself.
func checkContact(c *gin.Context, cfg *config.Config, email, phone string) bool {
	if cfg.CheckEmailDomain && !validators.IsEmailDomainValid(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not appear to be valid")
		return false
	}
	if !validators.IsPhoneValid(phone) {
		httperr.BadRequest(c, "invalid_phone", "Please provide a valid phone number")
		return false
	}
	return true
}

func (h *AuthHandler) issue(p auth.Principal) (string, error) {
	return auth.IssueToken(h.config.JWTSecret, h.config.JWTTTL(), p)
}

// --------- Handlers ---------

func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		httperr.BadRequest(c, "invalid_request", "Username is required")
		return
	}

	taken, err := usernameTaken(h.db, username, uuid.Nil)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": !taken})
}

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	email := validators.NormalizeEmail(req.Email)

	if !checkContact(c, h.config, email, req.Phone) {
		return
	}

	if taken, err := usernameTaken(h.db, username, uuid.Nil); err != nil {
		httperr.Respond(c, err)
		return
	} else if taken {
		httperr.BadRequest(c, "username_taken", "Username already exists")
		return
	}

	if taken, err := emailTaken(h.db, &models.Customer{}, email, uuid.Nil); err != nil {
		httperr.Respond(c, err)
		return
	} else if taken {
		httperr.BadRequest(c, "email_taken", "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", err.Error())
		return
	}

	customer := models.Customer{
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      req.Address,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "account_exists", "Username or email already registered")
			return
		}
		httperr.Respond(c, err)
		return
	}

	token, err := h.issue(auth.Principal{ID: customer.ID, Username: customer.Username, Role: auth.RoleCustomer})
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", err.Error())
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:   customer.ID.String(),
		ActorRole: auth.RoleCustomer,
		Action:    "customer_registered",
		Entity:    "customer",
		EntityID:  customer.ID.String(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registration successful",
		"customer": customer,
		"token":    token,
	})
}

func (h *AuthHandler) LoginCustomer(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var customer models.Customer
	if err := h.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if !auth.CheckPassword(customer.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password")
		return
	}

	token, err := h.issue(auth.Principal{ID: customer.ID, Username: customer.Username, Role: auth.RoleCustomer})
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"customer": customer,
		"token":    token,
	})
}

func (h *AuthHandler) RegisterVendor(c *gin.Context) {
	var req RegisterVendorRequest
	if !bindJSON(c, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	email := validators.NormalizeEmail(req.Email)

	for _, cat := range req.Categories {
		if !models.ValidCategory(cat) {
			httperr.BadRequest(c, "invalid_category", "Unknown category "+cat)
			return
		}
	}

	if !checkContact(c, h.config, email, req.Phone) {
		return
	}

	if taken, err := usernameTaken(h.db, username, uuid.Nil); err != nil {
		httperr.Respond(c, err)
		return
	} else if taken {
		httperr.BadRequest(c, "username_taken", "Username already exists")
		return
	}

	if taken, err := emailTaken(h.db, &models.Vendor{}, email, uuid.Nil); err != nil {
		httperr.Respond(c, err)
		return
	} else if taken {
		httperr.BadRequest(c, "email_taken", "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", err.Error())
		return
	}

	vendor := models.Vendor{
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		About:        req.About,
		Categories:   req.Categories,
		Status:       models.VendorStatusPending,
	}

	if err := h.db.Create(&vendor).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "account_exists", "Username or email already registered")
			return
		}
		httperr.Respond(c, err)
		return
	}

	token, err := h.issue(vendorPrincipal(&vendor))
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", err.Error())
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:   vendor.ID.String(),
		ActorRole: auth.RoleVendor,
		Action:    "vendor_registered",
		Entity:    "vendor",
		EntityID:  vendor.ID.String(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Your account is pending approval.",
		"vendor":  vendor,
		"token":   token,
	})
}

func (h *AuthHandler) LoginVendor(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var vendor models.Vendor
	if err := h.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if !auth.CheckPassword(vendor.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password")
		return
	}

	token, err := h.issue(vendorPrincipal(&vendor))
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"vendor":  vendor,
		"token":   token,
	})
}

func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var admin models.Admin
	if err := h.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid admin credentials")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid admin credentials")
		return
	}

	token, err := h.issue(auth.Principal{ID: admin.ID, Username: admin.Username, Role: auth.RoleAdmin})
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin login successful",
		"admin":   admin,
		"token":   token,
	})
}

func vendorPrincipal(v *models.Vendor) auth.Principal {
	return auth.Principal{
		ID:       v.ID,
		Username: v.Username,
		Role:     auth.RoleVendor,
		Status:   v.Status,
	}
}
