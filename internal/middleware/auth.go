package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/auth"
	"github.com/BruksfildServices01/eventgenie/internal/config"
	"github.com/BruksfildServices01/eventgenie/internal/models"
)

const (
	ContextUserRole   = "userRole"
	ContextUserStatus = "userStatus"
	ContextPrincipal  = "principal"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_authorization_header"})
			return
		}

		p, err := auth.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token"})
			return
		}

		c.Set(ContextUserRole, p.Role)
		c.Set(ContextUserStatus, p.Status)
		c.Set(ContextPrincipal, p)

		c.Next()
	}
}

// Principal returns the caller set by AuthMiddleware.
func Principal(c *gin.Context) auth.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Principal{}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error_code": "forbidden",
			"message":    "insufficient role",
		})
	}
}

// RequireSelf lets the request through when the path parameter names the
// caller's own account. Admins pass for any id.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(param))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error_code": "invalid_id",
				"message":    "Invalid " + param,
			})
			return
		}
		if !Principal(c).CanActAs(id) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error_code": "forbidden",
				"message":    "You can only act on your own account",
			})
			return
		}
		c.Next()
	}
}

// RefreshVendor reloads a vendor caller's username and approval status so
// that an approval or rejection applies to tokens issued before it.
// Other roles pass through untouched.
func RefreshVendor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c)
		if p.Role != auth.RoleVendor {
			c.Next()
			return
		}

		var v models.Vendor
		res := db.WithContext(c.Request.Context()).
			Select("username", "status").
			Where("id = ?", p.ID).
			Limit(1).
			Find(&v)
		if res.Error != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error_code": "internal_error"})
			return
		}
		if res.RowsAffected == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "account_not_found"})
			return
		}

		p.Username = v.Username
		p.Status = v.Status
		c.Set(ContextUserStatus, p.Status)
		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// RequireApprovedVendor blocks vendors whose account is not accepted yet.
func RequireApprovedVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.GetString(ContextUserStatus)
		if c.GetString(ContextUserRole) == auth.RoleVendor && status != models.VendorStatusAccepted {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error_code": "vendor_not_approved",
				"message":    "Your vendor account has not been approved yet",
				"status":     status,
			})
			return
		}
		c.Next()
	}
}
