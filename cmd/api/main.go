package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kinara-erp/vouchers-api/internal/application/service"
	"github.com/kinara-erp/vouchers-api/internal/config"
	"github.com/kinara-erp/vouchers-api/internal/infrastructure/database"
	"github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/handler"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/routes"
	"github.com/kinara-erp/vouchers-api/pkg/email"
	"github.com/kinara-erp/vouchers-api/pkg/oauth"
	"github.com/kinara-erp/vouchers-api/pkg/printer"
	"github.com/kinara-erp/vouchers-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	productRepo := repository.NewProductRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	courierRepo := repository.NewCourierRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	purchaseOrderItemRepo := repository.NewPurchaseOrderItemRepository(db)
	goodsReceiptRepo := repository.NewGoodsReceiptRepository(db)
	purchaseVoucherRepo := repository.NewPurchaseVoucherRepository(db)
	purchaseReturnRepo := repository.NewPurchaseReturnRepository(db)
	dispatchRepo := repository.NewDispatchOrderRepository(db)
	installationRepo := repository.NewInstallationJobRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	tenantService := service.NewTenantService(tenantRepo)
	productService := service.NewProductService(productRepo, unitRepo)
	unitService := service.NewUnitService(unitRepo)
	vendorService := service.NewVendorService(vendorRepo)
	customerService := service.NewCustomerService(customerRepo)
	courierService := service.NewCourierService(courierRepo)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderRepo, purchaseOrderItemRepo, goodsReceiptRepo, productRepo, vendorRepo, tenantRepo, emailService)
	goodsReceiptService := service.NewGoodsReceiptService(goodsReceiptRepo, purchaseOrderRepo, tenantRepo)
	purchaseVoucherService := service.NewPurchaseVoucherService(purchaseVoucherRepo, goodsReceiptRepo, productRepo, tenantRepo)
	purchaseReturnService := service.NewPurchaseReturnService(purchaseReturnRepo, goodsReceiptRepo, productRepo, tenantRepo)
	dispatchService := service.NewDispatchService(dispatchRepo, customerRepo, courierRepo, productRepo, tenantRepo)
	installationService := service.NewInstallationService(installationRepo, dispatchRepo, userRepo, tenantRepo)
	opportunityService := service.NewOpportunityService(opportunityRepo, customerRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo, vendorRepo, customerRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, purchaseVoucherRepo, tenantRepo, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:            handler.NewAuthHandler(authService),
		Tenant:          handler.NewTenantHandler(tenantService),
		Product:         handler.NewProductHandler(productService),
		Unit:            handler.NewUnitHandler(unitService),
		PurchaseOrder:   handler.NewPurchaseOrderHandler(purchaseOrderService),
		GoodsReceipt:    handler.NewGoodsReceiptHandler(goodsReceiptService),
		PurchaseVoucher: handler.NewPurchaseVoucherHandler(purchaseVoucherService),
		PurchaseReturn:  handler.NewPurchaseReturnHandler(purchaseReturnService),
		Dispatch:        handler.NewDispatchHandler(dispatchService),
		Installation:    handler.NewInstallationHandler(installationService),
		Opportunity:     handler.NewOpportunityHandler(opportunityService),
		Vendor:          handler.NewVendorHandler(vendorService),
		Customer:        handler.NewCustomerHandler(customerService),
		Courier:         handler.NewCourierHandler(courierService),
		Dashboard:       handler.NewDashboardHandler(dashboardService),
		User:            handler.NewUserHandler(userService),
		Printer:         handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
