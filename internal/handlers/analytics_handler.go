package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"budgetlens/internal/services"
)

// AnalyticsHandler serves the budget analytics snapshot and reports.
type AnalyticsHandler struct {
	analyticsService services.BudgetAnalyticsServicer
	reportService    services.BudgetReportServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.BudgetAnalyticsServicer, reportService services.BudgetReportServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, reportService: reportService}
}

// windowedBuilder builds a budget document over an optional date window.
type windowedBuilder[T any] func(ctx context.Context, userID, budgetID string, start, end time.Time) (*T, error)

// serveWindowed resolves the caller, budget id and window, then responds
// with {key: document}.
func serveWindowed[T any](c *gin.Context, key, startParam, endParam string, build windowedBuilder[T]) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	start, end, err := parseDateWindow(c, startParam, endParam)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := build(c.Request.Context(), userID, budgetID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: doc})
}

// GetBudgetAnalytics returns the raw analytics snapshot of a budget.
// @Summary     Budget analytics snapshot
// @Description Totals, per-category breakdown, daily progress and alerts over a window
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Budget ID"
// @Param       start_date query string false "Window start (YYYY-MM-DD), defaults to the budget start"
// @Param       end_date   query string false "Window end (YYYY-MM-DD), defaults to the budget end"
// @Success     200 {object} map[string]services.BudgetAnalytics "analytics"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/analytics [get]
func (h *AnalyticsHandler) GetBudgetAnalytics(c *gin.Context) {
	serveWindowed(c, "analytics", "start_date", "end_date", h.analyticsService.GetBudgetAnalytics)
}

// GetPerformanceReport returns the performance report of a budget.
// @Summary     Budget performance report
// @Description Overall variance, per-category variance and insights
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Budget ID"
// @Param       start_date query string false "Window start (YYYY-MM-DD)"
// @Param       end_date   query string false "Window end (YYYY-MM-DD)"
// @Success     200 {object} map[string]services.PerformanceReport "report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/analytics/performance [get]
func (h *AnalyticsHandler) GetPerformanceReport(c *gin.Context) {
	serveWindowed(c, "report", "start_date", "end_date", h.reportService.GetBudgetPerformanceReport)
}

// GetBudgetVsActualReport returns the budget-vs-actual comparison.
// @Summary     Budget vs actual report
// @Description Allocated against spent per category with spending efficiency
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Budget ID"
// @Param       start_date query string false "Window start (YYYY-MM-DD)"
// @Param       end_date   query string false "Window end (YYYY-MM-DD)"
// @Success     200 {object} map[string]services.BudgetVsActualReport "report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/analytics/budget-vs-actual [get]
func (h *AnalyticsHandler) GetBudgetVsActualReport(c *gin.Context) {
	serveWindowed(c, "report", "start_date", "end_date", h.reportService.GetBudgetVsActualReport)
}

// GetTrendAnalysis returns monthly spend trends and a next-month projection.
// @Summary     Budget trend analysis
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Budget ID"
// @Param       start_date query string false "Window start (YYYY-MM-DD)"
// @Param       end_date   query string false "Window end (YYYY-MM-DD)"
// @Success     200 {object} map[string]services.TrendAnalysis "report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/analytics/trends [get]
func (h *AnalyticsHandler) GetTrendAnalysis(c *gin.Context) {
	serveWindowed(c, "report", "start_date", "end_date", h.reportService.GetBudgetTrendAnalysis)
}

// GetVarianceAnalysis returns favorable and unfavorable variances per category.
// @Summary     Budget variance analysis
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Budget ID"
// @Param       start_date query string false "Window start (YYYY-MM-DD)"
// @Param       end_date   query string false "Window end (YYYY-MM-DD)"
// @Success     200 {object} map[string]services.VarianceAnalysis "report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/analytics/variance [get]
func (h *AnalyticsHandler) GetVarianceAnalysis(c *gin.Context) {
	serveWindowed(c, "report", "start_date", "end_date", h.reportService.GetBudgetVarianceAnalysis)
}

// GetForecast projects spend over a forecast window.
// @Summary     Budget forecast
// @Description Optimistic, realistic and pessimistic projections with risk factors
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id             path  string true  "Budget ID"
// @Param       forecast_start query string false "Forecast start (YYYY-MM-DD), defaults to the budget start"
// @Param       forecast_end   query string false "Forecast end (YYYY-MM-DD), defaults to the budget end"
// @Success     200 {object} map[string]services.BudgetForecast "report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/analytics/forecast [get]
func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	serveWindowed(c, "report", "forecast_start", "forecast_end", h.reportService.GetBudgetForecast)
}

// GetCategoryBreakdown returns the spend of every allocated category.
// @Summary     Budget category breakdown
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Budget ID"
// @Param       start_date query string false "Window start (YYYY-MM-DD)"
// @Param       end_date   query string false "Window end (YYYY-MM-DD)"
// @Success     200 {object} map[string]services.CategoryBreakdownReport "report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/analytics/categories [get]
func (h *AnalyticsHandler) GetCategoryBreakdown(c *gin.Context) {
	serveWindowed(c, "report", "start_date", "end_date", h.reportService.GetBudgetCategoryBreakdown)
}
