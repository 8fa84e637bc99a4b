package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/services"
)

func setupExportRouter(handler *ExportHandler) *gin.Engine {
	r := gin.New()
	r.POST("/budgets/reports/export", injectUserID(testUserID), handler.ExportReport)
	return r
}

func TestExportHandler_ExportReport(t *testing.T) {
	t.Run("returns the file and audits the export", func(t *testing.T) {
		var gotOpts services.ExportOptions
		svc := &mockExportService{
			exportFn: func(_ context.Context, userID string, opts services.ExportOptions) (*services.ExportResult, error) {
				if userID != testUserID {
					t.Errorf("expected user %s, got %s", testUserID, userID)
				}
				gotOpts = opts
				return &services.ExportResult{
					Data:     []byte("report_type,budget_id,key,value\n"),
					Format:   "text/csv",
					Filename: "budget-report-variance-2025-04-01.csv",
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupExportRouter(NewExportHandler(svc, audit))

		rec := doRequest(r, http.MethodPost, "/budgets/reports/export",
			`{"format":"csv","report_type":"variance","start_date":"2025-03-01","end_date":"2025-03-31",`+
				`"budget_ids":["`+testBudgetID+`"],"include_details":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("Content-Type"); got != "text/csv" {
			t.Errorf("expected text/csv, got %q", got)
		}
		if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="budget-report-variance-2025-04-01.csv"` {
			t.Errorf("unexpected Content-Disposition %q", got)
		}
		if rec.Body.String() != "report_type,budget_id,key,value\n" {
			t.Errorf("unexpected body %q", rec.Body.String())
		}

		if gotOpts.Format != services.FormatCSV || gotOpts.ReportType != services.ReportVariance {
			t.Errorf("unexpected options: %+v", gotOpts)
		}
		if !gotOpts.DateRange.Start.Equal(date(2025, time.March, 1)) || !gotOpts.DateRange.End.Equal(date(2025, time.March, 31)) {
			t.Errorf("unexpected range: %+v", gotOpts.DateRange)
		}
		if !gotOpts.IncludeDetails || gotOpts.IncludeCharts {
			t.Errorf("unexpected flags: %+v", gotOpts)
		}

		if len(audit.entries) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
		}
		entry := audit.entries[0]
		if entry.action != services.AuditActionExportReport || entry.userID != testUserID {
			t.Errorf("unexpected audit entry: %+v", entry)
		}
		if entry.resourceID != "budget-report-variance-2025-04-01.csv" {
			t.Errorf("expected filename as resource id, got %q", entry.resourceID)
		}
	})

	t.Run("returns 400 on unsupported format", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupExportRouter(NewExportHandler(&mockExportService{}, audit))

		rec := doRequest(r, http.MethodPost, "/budgets/reports/export",
			`{"format":"docx","report_type":"variance","budget_ids":["`+testBudgetID+`"]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		if len(audit.entries) != 0 {
			t.Error("rejected export should not be audited")
		}
	})

	t.Run("returns 400 on unknown report type", func(t *testing.T) {
		r := setupExportRouter(NewExportHandler(&mockExportService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/budgets/reports/export",
			`{"format":"json","report_type":"summary","budget_ids":["`+testBudgetID+`"]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 without budgets", func(t *testing.T) {
		r := setupExportRouter(NewExportHandler(&mockExportService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/budgets/reports/export", `{"format":"json","report_type":"all"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 501 when no renderer is configured", func(t *testing.T) {
		svc := &mockExportService{
			exportFn: func(context.Context, string, services.ExportOptions) (*services.ExportResult, error) {
				return nil, apperrors.ErrRendererUnavailable
			},
		}
		r := setupExportRouter(NewExportHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/budgets/reports/export",
			`{"format":"pdf","report_type":"performance","budget_ids":["`+testBudgetID+`"]}`)
		if rec.Code != http.StatusNotImplemented {
			t.Fatalf("expected 501, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "RENDERER_UNAVAILABLE")
	})

	t.Run("returns 404 when a budget is missing", func(t *testing.T) {
		svc := &mockExportService{
			exportFn: func(context.Context, string, services.ExportOptions) (*services.ExportResult, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupExportRouter(NewExportHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodPost, "/budgets/reports/export",
			`{"format":"json","report_type":"all","budget_ids":["`+testBudgetID+`"]}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["error"].(map[string]interface{})["message"] != "Budget not found" {
			t.Errorf("unexpected message: %v", result["error"])
		}
	})
}
