package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kinara-erp/vouchers-api/internal/config"
	domainRepo "github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/handler"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/middleware"
	"github.com/kinara-erp/vouchers-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth            *handler.AuthHandler
	Tenant          *handler.TenantHandler
	Product         *handler.ProductHandler
	Unit            *handler.UnitHandler
	PurchaseOrder   *handler.PurchaseOrderHandler
	GoodsReceipt    *handler.GoodsReceiptHandler
	PurchaseVoucher *handler.PurchaseVoucherHandler
	PurchaseReturn  *handler.PurchaseReturnHandler
	Dispatch        *handler.DispatchHandler
	Installation    *handler.InstallationHandler
	Opportunity     *handler.OpportunityHandler
	Vendor          *handler.VendorHandler
	Customer        *handler.CustomerHandler
	Courier         *handler.CourierHandler
	Dashboard       *handler.DashboardHandler
	User            *handler.UserHandler
	Printer         *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Tenants
	registerTenantRoutes(protected, h)

	// Master data
	registerProductRoutes(protected, h)
	registerUnitRoutes(protected, h)
	registerVendorRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerCourierRoutes(protected, h)

	// Purchase cycle
	registerPurchaseOrderRoutes(protected, h, deps)
	registerGoodsReceiptRoutes(protected, h, deps)
	registerPurchaseVoucherRoutes(protected, h, deps)
	registerPurchaseReturnRoutes(protected, h, deps)

	// Outbound cycle
	registerDispatchRoutes(protected, h, deps)
	registerInstallationRoutes(protected, h, deps)

	// CRM
	registerOpportunityRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Roles (Admin)
	registerRoleRoutes(protected, h)

	// Permissions (Admin)
	registerPermissionRoutes(protected, h)

	// Super Admin routes
	registerAdminRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.GET("", h.Tenant.ListTenants)
		tenants.POST("", h.Tenant.Create)
		tenants.GET("/current", h.Tenant.GetCurrentTenant)
		tenants.PUT("/current", h.Tenant.UpdateTenant)
		tenants.GET("/current/members", h.Tenant.ListMembers)
		tenants.POST("/current/members", h.Tenant.InviteMember)
		tenants.PUT("/current/members/:user_id", h.Tenant.UpdateMemberRole)
		tenants.DELETE("/current/members/:user_id", h.Tenant.RemoveMember)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	products.Use(middleware.RequirePermission("manage-products"))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:slug", h.Product.Get)
		products.PUT("/:slug", h.Product.Update)
		products.DELETE("/:slug", h.Product.Delete)
	}
}

func registerUnitRoutes(protected *gin.RouterGroup, h *Handlers) {
	units := protected.Group("/units")
	units.Use(middleware.RequirePermission("manage-units"))
	{
		units.GET("", h.Unit.List)
		units.POST("", h.Unit.Create)
		units.PUT("/:id", h.Unit.Update)
		units.DELETE("/:id", h.Unit.Delete)
	}
}

func registerVendorRoutes(protected *gin.RouterGroup, h *Handlers) {
	vendors := protected.Group("/vendors")
	vendors.Use(middleware.RequirePermission("manage-vendors"))
	{
		vendors.GET("", h.Vendor.List)
		vendors.POST("", h.Vendor.Create)
		vendors.GET("/:id", h.Vendor.Get)
		vendors.PUT("/:id", h.Vendor.Update)
		vendors.DELETE("/:id", h.Vendor.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerCourierRoutes(protected *gin.RouterGroup, h *Handlers) {
	couriers := protected.Group("/couriers")
	couriers.Use(middleware.RequirePermission("manage-couriers"))
	{
		couriers.GET("", h.Courier.List)
		couriers.POST("", h.Courier.Create)
		couriers.GET("/:id", h.Courier.Get)
		couriers.PUT("/:id", h.Courier.Update)
		couriers.DELETE("/:id", h.Courier.Delete)
	}
}

func registerPurchaseOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/purchase-orders")
	orders.Use(middleware.RequirePermission("manage-purchase-orders"))
	{
		orders.GET("", h.PurchaseOrder.List)
		// Creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.PurchaseOrder.Create)
		orders.GET("/available-for-receipt", h.PurchaseOrder.AvailableForReceipt)
		orders.GET("/:id", h.PurchaseOrder.Get)
		orders.PUT("/:id", h.PurchaseOrder.Update)
		orders.POST("/:id/approve", h.PurchaseOrder.Approve)
		orders.POST("/:id/cancel", h.PurchaseOrder.Cancel)
		orders.DELETE("/:id", h.PurchaseOrder.Delete)
	}
}

func registerGoodsReceiptRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := protected.Group("/goods-receipts")
	receipts.Use(middleware.RequirePermission("manage-goods-receipts"))
	{
		receipts.GET("", h.GoodsReceipt.List)
		// Derivation is one-shot per order, so duplicates must be rejected
		receipts.POST("/from-purchase-order", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.GoodsReceipt.CreateFromPurchaseOrder)
		receipts.GET("/:id", h.GoodsReceipt.Get)
		receipts.PUT("/:id", h.GoodsReceipt.Update)
		receipts.POST("/:id/submit", h.GoodsReceipt.Submit)
		receipts.DELETE("/:id", h.GoodsReceipt.Delete)
	}
}

func registerPurchaseVoucherRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	vouchers := protected.Group("/purchase-vouchers")
	vouchers.Use(middleware.RequirePermission("manage-purchase-vouchers"))
	{
		vouchers.GET("", h.PurchaseVoucher.List)
		vouchers.POST("/from-goods-receipt", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.PurchaseVoucher.CreateFromGoodsReceipt)
		vouchers.GET("/:id", h.PurchaseVoucher.Get)
		vouchers.PUT("/:id", h.PurchaseVoucher.Update)
		vouchers.POST("/:id/approve", h.PurchaseVoucher.Approve)
		vouchers.POST("/:id/cancel", h.PurchaseVoucher.Cancel)
		vouchers.DELETE("/:id", h.PurchaseVoucher.Delete)
	}
}

func registerPurchaseReturnRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	returns := protected.Group("/purchase-returns")
	returns.Use(middleware.RequirePermission("manage-purchase-returns"))
	{
		returns.GET("", h.PurchaseReturn.List)
		returns.POST("/from-goods-receipt", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.PurchaseReturn.CreateFromGoodsReceipt)
		returns.GET("/:id", h.PurchaseReturn.Get)
		returns.PUT("/:id", h.PurchaseReturn.Update)
		returns.POST("/:id/approve", h.PurchaseReturn.Approve)
		returns.DELETE("/:id", h.PurchaseReturn.Delete)
	}
}

func registerDispatchRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	dispatches := protected.Group("/dispatches")
	dispatches.Use(middleware.RequirePermission("manage-dispatches"))
	{
		dispatches.GET("", h.Dispatch.List)
		dispatches.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Dispatch.Create)
		dispatches.GET("/available-for-installation", h.Dispatch.AvailableForInstallation)
		dispatches.GET("/:id", h.Dispatch.Get)
		dispatches.POST("/:id/dispatch", h.Dispatch.MarkDispatched)
		dispatches.POST("/:id/deliver", h.Dispatch.MarkDelivered)
		dispatches.POST("/:id/cancel", h.Dispatch.Cancel)
		dispatches.DELETE("/:id", h.Dispatch.Delete)
	}
}

func registerInstallationRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	installations := protected.Group("/installations")
	installations.Use(middleware.RequirePermission("manage-installations"))
	{
		installations.GET("", h.Installation.List)
		installations.POST("/from-dispatch", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Installation.CreateFromDispatch)
		installations.GET("/:id", h.Installation.Get)
		installations.POST("/:id/assign", middleware.RequireRole("super-admin", "admin"), h.Installation.AssignTechnician)
		installations.POST("/:id/start", h.Installation.Start)
		installations.POST("/:id/complete", h.Installation.Complete)
		installations.POST("/:id/cancel", h.Installation.Cancel)
		installations.DELETE("/:id", h.Installation.Delete)
	}
}

func registerOpportunityRoutes(protected *gin.RouterGroup, h *Handlers) {
	opportunities := protected.Group("/opportunities")
	opportunities.Use(middleware.RequirePermission("manage-opportunities"))
	{
		opportunities.GET("", h.Opportunity.List)
		opportunities.POST("", h.Opportunity.Create)
		opportunities.GET("/:id", h.Opportunity.Get)
		opportunities.PUT("/:id", h.Opportunity.Update)
		opportunities.POST("/:id/stage", h.Opportunity.MoveStage)
		opportunities.DELETE("/:id", h.Opportunity.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("super-admin"))
	{
		admin.GET("/tenants", h.Tenant.ListAllTenants)
		admin.POST("/tenants/assign-user", h.Tenant.AssignUserToTenant)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/vouchers/:id", h.Printer.PrintPurchaseVoucher)
	}
}
