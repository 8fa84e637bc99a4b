package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	apperrors "budgetlens/internal/errors"
)

// ExportFormat is an export output format.
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
	FormatPDF   ExportFormat = "pdf"
)

// ReportType selects the reports to export. ReportAll expands to a fixed list.
type ReportType string

const (
	ReportPerformance       ReportType = "performance"
	ReportBudgetVsActual    ReportType = "budget_vs_actual"
	ReportTrends            ReportType = "trends"
	ReportVariance          ReportType = "variance"
	ReportForecast          ReportType = "forecast"
	ReportCategoryBreakdown ReportType = "category_breakdown"
	ReportAll               ReportType = "all"
)

// allReportKinds is what ReportAll exports.
var allReportKinds = []ReportType{ReportPerformance, ReportVariance}

type formatSpec struct {
	mime      string
	extension string
}

var exportFormats = map[ExportFormat]formatSpec{
	FormatJSON:  {mime: "application/json", extension: "json"},
	FormatCSV:   {mime: "text/csv", extension: "csv"},
	FormatExcel: {mime: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", extension: "xlsx"},
	FormatPDF:   {mime: "application/pdf", extension: "pdf"},
}

// reportBuilder builds one report kind for one budget.
type reportBuilder func(ctx context.Context, r BudgetReportServicer, userID, budgetID string, start, end time.Time) (any, error)

var reportBuilders = map[ReportType]reportBuilder{
	ReportPerformance: func(ctx context.Context, r BudgetReportServicer, userID, budgetID string, start, end time.Time) (any, error) {
		return r.GetBudgetPerformanceReport(ctx, userID, budgetID, start, end)
	},
	ReportBudgetVsActual: func(ctx context.Context, r BudgetReportServicer, userID, budgetID string, start, end time.Time) (any, error) {
		return r.GetBudgetVsActualReport(ctx, userID, budgetID, start, end)
	},
	ReportTrends: func(ctx context.Context, r BudgetReportServicer, userID, budgetID string, start, end time.Time) (any, error) {
		return r.GetBudgetTrendAnalysis(ctx, userID, budgetID, start, end)
	},
	ReportVariance: func(ctx context.Context, r BudgetReportServicer, userID, budgetID string, start, end time.Time) (any, error) {
		return r.GetBudgetVarianceAnalysis(ctx, userID, budgetID, start, end)
	},
	ReportForecast: func(ctx context.Context, r BudgetReportServicer, userID, budgetID string, start, end time.Time) (any, error) {
		return r.GetBudgetForecast(ctx, userID, budgetID, start, end)
	},
	ReportCategoryBreakdown: func(ctx context.Context, r BudgetReportServicer, userID, budgetID string, start, end time.Time) (any, error) {
		return r.GetBudgetCategoryBreakdown(ctx, userID, budgetID, start, end)
	},
}

// SupportedExportFormat reports whether f is a known export format.
func SupportedExportFormat(f string) bool {
	_, ok := exportFormats[ExportFormat(f)]
	return ok
}

// SupportedReportType reports whether t is a known report type or ReportAll.
func SupportedReportType(t string) bool {
	if ReportType(t) == ReportAll {
		return true
	}
	_, ok := reportBuilders[ReportType(t)]
	return ok
}

// reportKinds expands t into the report kinds to build.
func reportKinds(t ReportType) ([]ReportType, error) {
	if t == ReportAll {
		return allReportKinds, nil
	}
	if _, ok := reportBuilders[t]; !ok {
		return nil, apperrors.ErrUnsupportedReportType
	}
	return []ReportType{t}, nil
}

// DateRange is an inclusive date window. Zero dates default to the budget's window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ExportOptions selects what to export and how.
type ExportOptions struct {
	Format     ExportFormat
	ReportType ReportType
	DateRange  DateRange
	BudgetIDs  []string
	// Categories, when set, restricts category-level rows to these ids.
	Categories []string
	// IncludeCharts adds chart series (daily progress) to the payload.
	IncludeCharts bool
	// IncludeDetails keeps per-category transaction lists.
	IncludeDetails bool
}

// ExportedReport is one report of one budget inside an export.
type ExportedReport struct {
	ReportType ReportType `json:"report_type"`
	BudgetID   string     `json:"budget_id"`
	Report     any        `json:"report"`
}

// ExportPayload is the structured document handed to serializers and renderers.
type ExportPayload struct {
	ReportType  ReportType       `json:"report_type"`
	DateRange   DateRange        `json:"date_range"`
	GeneratedAt time.Time        `json:"generated_at"`
	Reports     []ExportedReport `json:"reports"`
}

// ExportResult is a serialized export.
type ExportResult struct {
	Data []byte `json:"-"`
	// Format is the MIME type of Data.
	Format   string `json:"format"`
	Filename string `json:"filename"`
}

// unavailableRenderer is used when no binary renderer is configured.
type unavailableRenderer struct{}

func (unavailableRenderer) Render(context.Context, *ExportPayload, ExportFormat) ([]byte, error) {
	return nil, apperrors.ErrRendererUnavailable
}

// budgetExportService serializes reports into downloadable documents.
type budgetExportService struct {
	reports  BudgetReportServicer
	renderer Renderer
	now      func() time.Time
}

// NewBudgetExportService creates a new BudgetExportServicer. A nil renderer
// makes excel and pdf exports fail with ErrRendererUnavailable.
func NewBudgetExportService(reports BudgetReportServicer, renderer Renderer, cfg AnalyticsConfig) BudgetExportServicer {
	if renderer == nil {
		renderer = unavailableRenderer{}
	}
	return &budgetExportService{reports: reports, renderer: renderer, now: cfg.withDefaults().Now}
}

// ExportBudgetReport builds the selected reports for every budget and
// serializes them into a single document.
func (s *budgetExportService) ExportBudgetReport(ctx context.Context, userID string, opts ExportOptions) (*ExportResult, error) {
	spec, ok := exportFormats[opts.Format]
	if !ok {
		return nil, apperrors.ErrUnsupportedExportFormat
	}
	kinds, err := reportKinds(opts.ReportType)
	if err != nil {
		return nil, err
	}
	if len(opts.BudgetIDs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one budget id is required")
	}
	if !opts.DateRange.Start.IsZero() && !opts.DateRange.End.IsZero() && opts.DateRange.End.Before(opts.DateRange.Start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	now := s.now().UTC()
	payload := &ExportPayload{
		ReportType:  opts.ReportType,
		DateRange:   opts.DateRange,
		GeneratedAt: now,
		Reports:     make([]ExportedReport, 0, len(kinds)*len(opts.BudgetIDs)),
	}
	for _, budgetID := range opts.BudgetIDs {
		for _, kind := range kinds {
			report, err := reportBuilders[kind](ctx, s.reports, userID, budgetID, opts.DateRange.Start, opts.DateRange.End)
			if err != nil {
				return nil, err
			}
			shapeReport(report, opts)
			payload.Reports = append(payload.Reports, ExportedReport{ReportType: kind, BudgetID: budgetID, Report: report})
		}
	}

	var data []byte
	switch opts.Format {
	case FormatJSON:
		data, err = json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case FormatCSV:
		data, err = encodeCSV(payload)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		data, err = s.renderer.Render(ctx, payload, opts.Format)
		if err != nil {
			return nil, apperrors.Upstream(err)
		}
	}

	return &ExportResult{
		Data:     data,
		Format:   spec.mime,
		Filename: fmt.Sprintf("budget-report-%s-%s.%s", opts.ReportType, now.Format("2006-01-02"), spec.extension),
	}, nil
}

// shapeReport applies the category filter and the detail and chart options
// to a freshly built report.
func shapeReport(report any, opts ExportOptions) {
	var keep func(string) bool
	if len(opts.Categories) > 0 {
		allowed := make(map[string]bool, len(opts.Categories))
		for _, id := range opts.Categories {
			allowed[id] = true
		}
		keep = func(id string) bool { return allowed[id] }
	}

	switch r := report.(type) {
	case *PerformanceReport:
		r.CategoryPerformance = filterRows(r.CategoryPerformance, keep, func(c CategoryPerformance) string { return c.CategoryID })
		if !opts.IncludeCharts {
			r.DailyProgress = nil
		}
	case *BudgetVsActualReport:
		r.CategoryComparison = filterRows(r.CategoryComparison, keep, func(c CategoryComparison) string { return c.CategoryID })
	case *TrendAnalysis:
		r.CategoryTrends = filterRows(r.CategoryTrends, keep, func(c CategoryTrend) string { return c.CategoryID })
	case *VarianceAnalysis:
		r.CategoryVariances = filterRows(r.CategoryVariances, keep, func(c VarianceRecord) string { return c.CategoryID })
	case *BudgetForecast:
		r.CategoryForecasts = filterRows(r.CategoryForecasts, keep, func(c CategoryForecast) string { return c.CategoryID })
	case *CategoryBreakdownReport:
		r.Categories = filterRows(r.Categories, keep, func(c CategoryStatistics) string { return c.CategoryID })
		if !opts.IncludeDetails {
			for i := range r.Categories {
				r.Categories[i].Transactions = nil
			}
		}
	}
}

func filterRows[T any](rows []T, keep func(string) bool, id func(T) string) []T {
	if keep == nil {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(id(row)) {
			out = append(out, row)
		}
	}
	return out
}

// encodeCSV flattens each report into key/value rows, keys being JSON paths
// such as "category_performance[0].variance_amount".
func encodeCSV(payload *ExportPayload) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"report_type", "budget_id", "key", "value"}); err != nil {
		return nil, err
	}
	for _, r := range payload.Reports {
		raw, err := json.Marshal(r.Report)
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
		var rows [][2]string
		flatten("", doc, &rows)
		for _, kv := range rows {
			if err := w.Write([]string{string(r.ReportType), r.BudgetID, kv[0], kv[1]}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flatten(prefix string, v any, rows *[][2]string) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, t[k], rows)
		}
	case []any:
		for i, item := range t {
			flatten(prefix+"["+strconv.Itoa(i)+"]", item, rows)
		}
	case nil:
		*rows = append(*rows, [2]string{prefix, ""})
	case json.Number:
		*rows = append(*rows, [2]string{prefix, t.String()})
	case bool:
		*rows = append(*rows, [2]string{prefix, strconv.FormatBool(t)})
	default:
		*rows = append(*rows, [2]string{prefix, fmt.Sprint(t)})
	}
}
