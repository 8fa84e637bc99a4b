package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/logger"
	"budgetlens/internal/services"
	"budgetlens/internal/uuid"
)

// AlertHandler serves budget alert checks.
type AlertHandler struct {
	alertService services.BudgetAlertServicer
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService services.BudgetAlertServicer) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// SweepAlertsRequest lists the users whose budgets the sweep job checks.
type SweepAlertsRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1,max=500,dive,uuid"`
}

// UserAlerts is the sweep result for one user.
type UserAlerts struct {
	UserID string           `json:"user_id"`
	Alerts []services.Alert `json:"alerts"`
	Error  *ErrorDetail     `json:"error,omitempty"`
}

// GetAlerts checks alert conditions for one budget or every budget of the user.
// @Summary     Check budget alerts
// @Description Alerts are computed on demand and never stored
// @Tags        alerts
// @Produce     json
// @Security    BearerAuth
// @Param       budget_id query string false "Only check this budget"
// @Success     200 {object} map[string]interface{} "alerts and count"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/alerts [get]
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var budgetID *string
	if raw := c.Query("budget_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid budget_id"))
			return
		}
		budgetID = &id
	}

	alerts, err := h.alertService.CheckBudgetAlerts(c.Request.Context(), userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// SweepAlerts checks every budget of each listed user. It is called by the
// scheduled alert job, not by end users. A failure for one user is reported
// in that user's entry and does not fail the sweep.
// @Summary     Sweep budget alerts
// @Tags        internal
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body SweepAlertsRequest true "Users to check"
// @Success     200 {object} map[string]interface{} "results per user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Scheduler not configured"
// @Router      /internal/alerts/sweep [post]
func (h *AlertHandler) SweepAlerts(c *gin.Context) {
	var req SweepAlertsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	results := make([]UserAlerts, 0, len(req.UserIDs))
	total := 0
	for _, userID := range req.UserIDs {
		alerts, err := h.alertService.CheckBudgetAlerts(c.Request.Context(), userID, nil)
		if err != nil {
			logger.Get().Warnw("alert sweep failed for user", "user_id", userID, "error", err)
			results = append(results, UserAlerts{
				UserID: userID,
				Alerts: []services.Alert{},
				Error:  &ErrorDetail{Code: apperrors.ErrInternalServer.Code, Message: apperrors.ErrInternalServer.Message},
			})
			continue
		}
		total += len(alerts)
		results = append(results, UserAlerts{UserID: userID, Alerts: alerts})
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "alert_count": total})
}
