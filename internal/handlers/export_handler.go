package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/services"
)

// ExportHandler serves report exports.
type ExportHandler struct {
	exportService services.BudgetExportServicer
	auditService  services.AuditServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.BudgetExportServicer, auditService services.AuditServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService, auditService: auditService}
}

// ExportRequest represents the request payload for exporting budget reports.
type ExportRequest struct {
	Format         string   `json:"format" binding:"required,export_format" example:"csv"`
	ReportType     string   `json:"report_type" binding:"required,report_type" example:"performance"`
	StartDate      string   `json:"start_date" binding:"omitempty,iso_date" example:"2025-03-01"`
	EndDate        string   `json:"end_date" binding:"omitempty,iso_date" example:"2025-03-31"`
	BudgetIDs      []string `json:"budget_ids" binding:"required,min=1,max=20,dive,uuid"`
	Categories     []string `json:"categories" binding:"omitempty,dive,uuid"`
	IncludeCharts  bool     `json:"include_charts"`
	IncludeDetails bool     `json:"include_details"`
}

// options converts the request into export options.
func (r *ExportRequest) options() (services.ExportOptions, error) {
	start, err := parseDate(r.StartDate, "start_date")
	if err != nil {
		return services.ExportOptions{}, err
	}
	end, err := parseDate(r.EndDate, "end_date")
	if err != nil {
		return services.ExportOptions{}, err
	}
	return services.ExportOptions{
		Format:         services.ExportFormat(r.Format),
		ReportType:     services.ReportType(r.ReportType),
		DateRange:      services.DateRange{Start: start, End: end},
		BudgetIDs:      r.BudgetIDs,
		Categories:     r.Categories,
		IncludeCharts:  r.IncludeCharts,
		IncludeDetails: r.IncludeDetails,
	}, nil
}

// ExportReport builds the requested reports and returns them as a file.
// @Summary     Export budget reports
// @Description Builds one report kind (or performance and variance for "all") for each budget and serializes it as json, csv, excel or pdf
// @Tags        reports
// @Accept      json
// @Produce     application/json
// @Produce     text/csv
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       request body ExportRequest true "Export options"
// @Success     200 {file} file "Exported document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Budget access denied"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     429 {object} ErrorResponse "Too many requests"
// @Failure     500 {object} ErrorResponse "Server error"
// @Failure     501 {object} ErrorResponse "No renderer for this format"
// @Router      /budgets/reports/export [post]
func (h *ExportHandler) ExportReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	opts, err := req.options()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.exportService.ExportBudgetReport(c.Request.Context(), userID, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionExportReport, "budget_report", result.Filename, c.ClientIP(),
		map[string]any{
			"format":      req.Format,
			"report_type": req.ReportType,
			"budget_ids":  req.BudgetIDs,
			"start_date":  req.StartDate,
			"end_date":    req.EndDate,
		})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.Format, result.Data)
}
