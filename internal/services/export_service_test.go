package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/testutil"
)

func exportFixture() *fixture {
	f := newFixture()
	f.txs.add(testUser, "food", 1500, noon(time.March, 4))
	f.txs.add(testUser, "rent", 2000, noon(time.March, 1))
	return f
}

func TestExportBudgetReport(t *testing.T) {
	ctx := context.Background()

	t.Run("json_all_reports", func(t *testing.T) {
		f := exportFixture()
		svc := NewBudgetExportService(f.reports(), nil, testConfig())

		result, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:     FormatJSON,
			ReportType: ReportAll,
			BudgetIDs:  []string{"b1"},
		})
		require.NoError(t, err)

		assert.Equal(t, "application/json", result.Format)
		assert.Equal(t, "budget-report-all-2025-04-01.json", result.Filename)
		assert.Equal(t, 2, f.budgets.calls(), "all expands to performance and variance")

		var payload struct {
			ReportType  string    `json:"report_type"`
			GeneratedAt time.Time `json:"generated_at"`
			Reports     []struct {
				ReportType string          `json:"report_type"`
				BudgetID   string          `json:"budget_id"`
				Report     json.RawMessage `json:"report"`
			} `json:"reports"`
		}
		require.NoError(t, json.Unmarshal(result.Data, &payload))
		assert.Equal(t, "all", payload.ReportType)
		assert.True(t, fixedNow.Equal(payload.GeneratedAt))
		require.Len(t, payload.Reports, 2)
		assert.Equal(t, "performance", payload.Reports[0].ReportType)
		assert.Equal(t, "variance", payload.Reports[1].ReportType)

		var perf PerformanceReport
		require.NoError(t, json.Unmarshal(payload.Reports[0].Report, &perf))
		assert.Equal(t, -500.0, perf.Performance.VarianceAmount)
		assert.Nil(t, perf.DailyProgress, "charts are opt-in")
	})

	t.Run("multiple_budgets", func(t *testing.T) {
		f := exportFixture()
		f.budgets.add(newBudget("b2", testUser, 100))
		svc := NewBudgetExportService(f.reports(), nil, testConfig())

		result, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:     FormatJSON,
			ReportType: ReportVariance,
			BudgetIDs:  []string{"b1", "b2"},
		})
		require.NoError(t, err)
		assert.Equal(t, "budget-report-variance-2025-04-01.json", result.Filename)
		assert.Equal(t, 2, f.budgets.calls())
	})

	t.Run("csv", func(t *testing.T) {
		f := exportFixture()
		svc := NewBudgetExportService(f.reports(), nil, testConfig())

		result, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:     FormatCSV,
			ReportType: ReportBudgetVsActual,
			BudgetIDs:  []string{"b1"},
		})
		require.NoError(t, err)
		assert.Equal(t, "text/csv", result.Format)
		assert.Equal(t, "budget-report-budget_vs_actual-2025-04-01.csv", result.Filename)

		rows, err := csv.NewReader(bytes.NewReader(result.Data)).ReadAll()
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, []string{"report_type", "budget_id", "key", "value"}, rows[0])

		values := map[string]string{}
		for _, row := range rows[1:] {
			assert.Equal(t, "budget_vs_actual", row[0])
			assert.Equal(t, "b1", row[1])
			values[row[2]] = row[3]
		}
		assert.Equal(t, "-500", values["summary.variance"])
		assert.Equal(t, "0.75", values["category_comparison[0].efficiency"])
		assert.Equal(t, "efficient", values["category_comparison[0].efficiency_status"])
		assert.Equal(t, "Food", values["category_comparison[0].category_name"])
	})

	t.Run("category_filter_and_details", func(t *testing.T) {
		f := exportFixture()
		svc := NewBudgetExportService(f.reports(), nil, testConfig())

		result, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:         FormatJSON,
			ReportType:     ReportCategoryBreakdown,
			BudgetIDs:      []string{"b1"},
			Categories:     []string{"rent"},
			IncludeDetails: true,
		})
		require.NoError(t, err)

		var payload struct {
			Reports []struct {
				Report CategoryBreakdownReport `json:"report"`
			} `json:"reports"`
		}
		require.NoError(t, json.Unmarshal(result.Data, &payload))
		require.Len(t, payload.Reports, 1)
		categories := payload.Reports[0].Report.Categories
		require.Len(t, categories, 1)
		assert.Equal(t, "rent", categories[0].CategoryID)
		assert.Len(t, categories[0].Transactions, 1)
	})

	t.Run("details_are_opt_in", func(t *testing.T) {
		f := exportFixture()
		renderer := &fakeRenderer{out: []byte("%PDF")}
		svc := NewBudgetExportService(f.reports(), renderer, testConfig())

		_, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:        FormatPDF,
			ReportType:    ReportCategoryBreakdown,
			BudgetIDs:     []string{"b1"},
			IncludeCharts: true,
		})
		require.NoError(t, err)

		report := renderer.payload.Reports[0].Report.(*CategoryBreakdownReport)
		for _, c := range report.Categories {
			assert.Nil(t, c.Transactions)
		}
	})

	t.Run("renderer", func(t *testing.T) {
		f := exportFixture()
		renderer := &fakeRenderer{out: []byte("xlsx-bytes")}
		svc := NewBudgetExportService(f.reports(), renderer, testConfig())

		result, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:        FormatExcel,
			ReportType:    ReportPerformance,
			BudgetIDs:     []string{"b1"},
			IncludeCharts: true,
		})
		require.NoError(t, err)

		assert.Equal(t, []byte("xlsx-bytes"), result.Data)
		assert.Equal(t, "budget-report-performance-2025-04-01.xlsx", result.Filename)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Format)
		assert.Equal(t, FormatExcel, renderer.format)
		require.Len(t, renderer.payload.Reports, 1)
		perf := renderer.payload.Reports[0].Report.(*PerformanceReport)
		assert.NotEmpty(t, perf.DailyProgress)
	})

	t.Run("renderer_unavailable", func(t *testing.T) {
		f := exportFixture()
		svc := NewBudgetExportService(f.reports(), nil, testConfig())

		_, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:     FormatPDF,
			ReportType: ReportPerformance,
			BudgetIDs:  []string{"b1"},
		})
		testutil.AssertAppError(t, err, "RENDERER_UNAVAILABLE")
	})

	t.Run("renderer_failure", func(t *testing.T) {
		f := exportFixture()
		svc := NewBudgetExportService(f.reports(), &fakeRenderer{err: errors.New("font missing")}, testConfig())

		_, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:     FormatPDF,
			ReportType: ReportPerformance,
			BudgetIDs:  []string{"b1"},
		})
		testutil.AssertErrorKind(t, err, apperrors.KindUpstream)
		assert.Equal(t, "font missing", err.Error())
	})

	t.Run("report_failure_aborts", func(t *testing.T) {
		f := exportFixture()
		svc := NewBudgetExportService(f.reports(), nil, testConfig())

		result, err := svc.ExportBudgetReport(ctx, testUser, ExportOptions{
			Format:     FormatJSON,
			ReportType: ReportForecast,
			BudgetIDs:  []string{"b1", "missing"},
		})
		assert.Nil(t, result)
		assert.Equal(t, "Budget not found", err.Error())
	})
}

func TestExportBudgetReportValidation(t *testing.T) {
	ctx := context.Background()
	f := exportFixture()
	svc := NewBudgetExportService(f.reports(), nil, testConfig())

	tests := []struct {
		name string
		opts ExportOptions
		code string
	}{
		{
			name: "unknown_format",
			opts: ExportOptions{Format: "docx", ReportType: ReportPerformance, BudgetIDs: []string{"b1"}},
			code: "UNSUPPORTED_EXPORT_FORMAT",
		},
		{
			name: "unknown_report_type",
			opts: ExportOptions{Format: FormatJSON, ReportType: "summary", BudgetIDs: []string{"b1"}},
			code: "UNSUPPORTED_REPORT_TYPE",
		},
		{
			name: "no_budgets",
			opts: ExportOptions{Format: FormatJSON, ReportType: ReportPerformance},
			code: "INVALID_INPUT",
		},
		{
			name: "inverted_range",
			opts: ExportOptions{
				Format:     FormatJSON,
				ReportType: ReportPerformance,
				BudgetIDs:  []string{"b1"},
				DateRange:  DateRange{Start: date(2025, time.March, 31), End: date(2025, time.March, 1)},
			},
			code: "INVALID_DATE_RANGE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ExportBudgetReport(ctx, testUser, tt.opts)
			testutil.AssertAppError(t, err, tt.code)
		})
	}
	assert.Equal(t, 0, f.budgets.calls())
}

func TestSupportedExportValues(t *testing.T) {
	for _, f := range []string{"json", "csv", "excel", "pdf"} {
		assert.True(t, SupportedExportFormat(f), f)
	}
	assert.False(t, SupportedExportFormat("xml"))

	for _, r := range []string{"performance", "budget_vs_actual", "trends", "variance", "forecast", "category_breakdown", "all"} {
		assert.True(t, SupportedReportType(r), r)
	}
	assert.False(t, SupportedReportType("summary"))
}
