package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "budgetlens/internal/docs" // Import swagger docs
	"budgetlens/internal/handlers"
	"budgetlens/internal/middleware"
)

type routerDeps struct {
	analytics       *handlers.AnalyticsHandler
	alerts          *handlers.AlertHandler
	export          *handlers.ExportHandler
	exportLimiter   *middleware.RateLimiter
	schedulerAPIKey string
}

func newRouter(deps routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID, Retry-After")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Scheduler routes
	internal := v1.Group("/internal")
	internal.Use(middleware.SchedulerAuthMiddleware(deps.schedulerAPIKey))
	internal.POST("/alerts/sweep", deps.alerts.SweepAlerts)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	budgets := protected.Group("/budgets")
	budgets.GET("/alerts", deps.alerts.GetAlerts)
	budgets.POST("/reports/export", middleware.RateLimit(deps.exportLimiter), deps.export.ExportReport)

	analytics := budgets.Group("/:id/analytics")
	analytics.GET("", deps.analytics.GetBudgetAnalytics)
	analytics.GET("/performance", deps.analytics.GetPerformanceReport)
	analytics.GET("/budget-vs-actual", deps.analytics.GetBudgetVsActualReport)
	analytics.GET("/trends", deps.analytics.GetTrendAnalysis)
	analytics.GET("/variance", deps.analytics.GetVarianceAnalysis)
	analytics.GET("/forecast", deps.analytics.GetForecast)
	analytics.GET("/categories", deps.analytics.GetCategoryBreakdown)

	return router
}
