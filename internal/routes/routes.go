package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	"github.com/BruksfildServices01/eventgenie/internal/auth"
	"github.com/BruksfildServices01/eventgenie/internal/config"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/handlers"
	infraRepo "github.com/BruksfildServices01/eventgenie/internal/infra/repository"
	"github.com/BruksfildServices01/eventgenie/internal/middleware"
	ucBooking "github.com/BruksfildServices01/eventgenie/internal/usecase/booking"
)

// Deps are the process-wide collaborators built in main.
type Deps struct {
	Locker domain.Locker
	Audit  *audit.Dispatcher
	Images handlers.ImageUploader // nil disables uploads
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	bookUC := ucBooking.NewBookService(bookingRepo, deps.Locker, deps.Audit)
	bulkUC := ucBooking.NewBulkBookServices(bookUC)
	cancelUC := ucBooking.NewCancelBooking(bookingRepo, deps.Audit)
	blockUC := ucBooking.NewBlockDates(bookingRepo, deps.Audit)
	reviewUC := ucBooking.NewAddReview(bookingRepo, deps.Audit)
	listUC := ucBooking.NewListServices(bookingRepo)
	customerBookingsUC := ucBooking.NewCustomerBookings(bookingRepo)
	vendorBookingsUC := ucBooking.NewVendorBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, deps.Audit)
	customerHandler := handlers.NewCustomerHandler(db, bookUC, bulkUC, cancelUC, reviewUC, customerBookingsUC)
	serviceHandler := handlers.NewServiceHandler(bookingRepo, listUC, blockUC)
	vendorHandler := handlers.NewVendorHandler(db, vendorBookingsUC, deps.Images, deps.Audit)
	adminHandler := handlers.NewAdminHandler(db, deps.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	authed := []gin.HandlerFunc{middleware.AuthMiddleware(cfg), middleware.RefreshVendor(db)}
	customerOnly := middleware.RequireRole(auth.RoleCustomer, auth.RoleAdmin)
	vendorOnly := middleware.RequireRole(auth.RoleVendor, auth.RoleAdmin)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	api := r.Group("/api")

	// ------------------------------
	// CUSTOMERS
	// ------------------------------
	customers := api.Group("/customers")
	{
		customers.GET("/check-username/:username", authHandler.CheckUsername)
		customers.POST("/register", authHandler.RegisterCustomer)
		customers.POST("/login", authHandler.LoginCustomer)

		secured := customers.Group("/", append(authed, customerOnly)...)
		secured.GET("/profile/:id", middleware.RequireSelf("id"), customerHandler.GetProfile)
		secured.PUT("/profile/:id", middleware.RequireSelf("id"), customerHandler.UpdateProfile)

		secured.POST("/book-service/:customerId/:serviceId", middleware.RequireSelf("customerId"), customerHandler.BookService)
		secured.POST("/bulk-book-services/:customerId", middleware.RequireSelf("customerId"), customerHandler.BulkBook)
		secured.POST("/cancel-booking/:serviceId/:bookingId", customerHandler.CancelBooking)
		secured.POST("/review/:customerId/:serviceId", middleware.RequireSelf("customerId"), customerHandler.AddReview)

		secured.GET("/booked-services/:customerId", middleware.RequireSelf("customerId"), customerHandler.BookedServices)
		secured.GET("/detailed-bookings/:customerId", middleware.RequireSelf("customerId"), customerHandler.DetailedBookings)
	}

	// ------------------------------
	// SERVICES (catalog + blocked dates)
	// ------------------------------
	services := api.Group("/services")
	{
		services.GET("", serviceHandler.List)
		services.GET("/category/:category", serviceHandler.ByCategory)
		services.GET("/vendor/:vendorUsername", serviceHandler.ByVendor)
		services.GET("/search/:query", serviceHandler.Search)
		services.GET("/:id", serviceHandler.Get)
		services.GET("/:id/reviews", serviceHandler.Reviews)

		manage := services.Group("/", append(authed, vendorOnly, middleware.RequireApprovedVendor())...)
		manage.POST("/:id/block", serviceHandler.Block)
		manage.POST("/:id/unblock", serviceHandler.Unblock)
		manage.POST("/bulk-block", serviceHandler.BulkBlock)
		manage.POST("/bulk-unblock", serviceHandler.BulkUnblock)

		admin := services.Group("/admin", append(authed, adminOnly)...)
		admin.POST("/bulk-block", serviceHandler.BulkBlock)
		admin.POST("/bulk-unblock", serviceHandler.BulkUnblock)
	}

	// ------------------------------
	// VENDORS
	// ------------------------------
	vendors := api.Group("/vendors")
	{
		vendors.GET("/check-username/:username", authHandler.CheckUsername)
		vendors.POST("/register", authHandler.RegisterVendor)
		vendors.POST("/login", authHandler.LoginVendor)

		self := vendors.Group("/", append(authed, vendorOnly)...)
		self.GET("/profile/:vendorId", middleware.RequireSelf("vendorId"), vendorHandler.GetProfile)
		self.PUT("/profile/:vendorId", middleware.RequireSelf("vendorId"), vendorHandler.UpdateProfile)

		approved := self.Group("/", middleware.RequireApprovedVendor())
		approved.GET("/services/:vendorId", middleware.RequireSelf("vendorId"), vendorHandler.ListServices)
		approved.POST("/services/:vendorId", middleware.RequireSelf("vendorId"), vendorHandler.CreateService)
		approved.PUT("/services/:vendorId/:serviceId", middleware.RequireSelf("vendorId"), vendorHandler.UpdateService)
		approved.DELETE("/services/:vendorId/:serviceId", middleware.RequireSelf("vendorId"), vendorHandler.DeleteService)
		approved.GET("/bookings/:vendorId", middleware.RequireSelf("vendorId"), vendorHandler.Bookings)
		approved.POST("/images/:vendorId", middleware.RequireSelf("vendorId"), vendorHandler.UploadImage)
	}

	// ------------------------------
	// ADMIN
	// ------------------------------
	admin := api.Group("/admin")
	{
		admin.POST("/login", authHandler.LoginAdmin)

		secured := admin.Group("/", append(authed, adminOnly)...)
		secured.GET("/vendors", adminHandler.Vendors)
		secured.GET("/vendors/pending", adminHandler.PendingVendors)
		secured.GET("/vendors/:id", adminHandler.VendorDetail)
		secured.PUT("/vendors/:id/approve", adminHandler.ApproveVendor)
		secured.PUT("/vendors/:id/reject", adminHandler.RejectVendor)

		secured.GET("/customers", adminHandler.Customers)
		secured.GET("/customers/:id", adminHandler.CustomerDetail)

		secured.GET("/services", adminHandler.Services)
		secured.GET("/services/:id", adminHandler.ServiceDetail)

		secured.GET("/bookings", adminHandler.Bookings)
		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
