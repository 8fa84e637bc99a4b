package main

import (
	"fmt"
	"os"

	"budgetlens/internal/config"
	"budgetlens/internal/database"
	"budgetlens/internal/handlers"
	"budgetlens/internal/logger"
	"budgetlens/internal/middleware"
	"budgetlens/internal/services"
	"budgetlens/internal/validator"
)

// @title           BudgetLens API
// @version         1.0
// @description     Budget analytics, reports, forecasts, alerts and exports.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	providers := services.Providers{
		Budgets:      services.NewBudgetStore(db),
		Transactions: services.NewTransactionQuery(db),
		Categories:   services.NewCategoryLookup(db),
	}
	analyticsConfig := services.NewAnalyticsConfig(appConfig)
	reportService := services.NewBudgetReportService(providers, analyticsConfig)

	// No binary renderer is deployed yet; excel and pdf exports answer 501.
	exportService := services.NewBudgetExportService(reportService, nil, analyticsConfig)

	exportLimiter := middleware.NewRateLimiter(appConfig.ExportRatePerMinute, appConfig.ExportBurst)
	defer exportLimiter.Stop()

	router := newRouter(routerDeps{
		analytics:       handlers.NewAnalyticsHandler(services.NewBudgetAnalyticsService(providers, analyticsConfig), reportService),
		alerts:          handlers.NewAlertHandler(services.NewBudgetAlertService(providers, analyticsConfig)),
		export:          handlers.NewExportHandler(exportService, services.NewAuditService(db)),
		exportLimiter:   exportLimiter,
		schedulerAPIKey: appConfig.SchedulerAPIKey,
	})

	log.Infof("Starting BudgetLens server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
