package services

import (
	"context"
	"time"

	"budgetlens/internal/models"
	"budgetlens/internal/pagination"
)

// BudgetStore resolves budgets owned by a user.
// GetBudgetByID returns ErrBudgetNotFound for a missing budget and
// ErrBudgetAccessDenied for one owned by someone else.
type BudgetStore interface {
	GetBudgetByID(ctx context.Context, userID, budgetID string) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
}

// TransactionFilter narrows a transaction query. Zero values mean "no filter".
// StartDate and EndDate are both inclusive.
type TransactionFilter struct {
	StartDate   time.Time
	EndDate     time.Time
	CategoryIDs []string
	Type        *models.TransactionType
	Limit       int
}

// TransactionPage is one page of a transaction query. Total counts every
// matching row, so Total > len(Transactions) means the result was truncated.
type TransactionPage struct {
	Transactions []models.Transaction
	Total        int64
}

// TransactionQuery finds a user's transactions.
type TransactionQuery interface {
	FindTransactions(ctx context.Context, userID string, filter TransactionFilter) (*TransactionPage, error)
}

// CategoryInfo is the display information for a category.
type CategoryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Path is "Parent > Child" for nested categories and Name otherwise.
	Path string `json:"path"`
}

// CategoryLookup resolves category display names.
type CategoryLookup interface {
	GetCategoryByID(ctx context.Context, categoryID string) (*CategoryInfo, error)
}

// Renderer produces binary documents (spreadsheets, PDFs) from an export payload.
type Renderer interface {
	Render(ctx context.Context, payload *ExportPayload, format ExportFormat) ([]byte, error)
}

// Providers bundles the data sources the analytics services read from.
type Providers struct {
	Budgets      BudgetStore
	Transactions TransactionQuery
	Categories   CategoryLookup
}

// BudgetAnalyticsServicer computes the analytics snapshot of a budget over a window.
type BudgetAnalyticsServicer interface {
	GetBudgetAnalytics(ctx context.Context, userID, budgetID string, start, end time.Time) (*BudgetAnalytics, error)
}

// BudgetReportServicer builds the budget reports.
// Zero start or end dates default to the budget's own window.
type BudgetReportServicer interface {
	GetBudgetPerformanceReport(ctx context.Context, userID, budgetID string, start, end time.Time) (*PerformanceReport, error)
	GetBudgetVsActualReport(ctx context.Context, userID, budgetID string, start, end time.Time) (*BudgetVsActualReport, error)
	GetBudgetTrendAnalysis(ctx context.Context, userID, budgetID string, start, end time.Time) (*TrendAnalysis, error)
	GetBudgetVarianceAnalysis(ctx context.Context, userID, budgetID string, start, end time.Time) (*VarianceAnalysis, error)
	GetBudgetForecast(ctx context.Context, userID, budgetID string, forecastStart, forecastEnd time.Time) (*BudgetForecast, error)
	GetBudgetCategoryBreakdown(ctx context.Context, userID, budgetID string, start, end time.Time) (*CategoryBreakdownReport, error)
}

// BudgetAlertServicer evaluates alert conditions. A nil budgetID checks every
// budget the user owns.
type BudgetAlertServicer interface {
	CheckBudgetAlerts(ctx context.Context, userID string, budgetID *string) ([]Alert, error)
}

// BudgetExportServicer bundles reports into a downloadable document.
type BudgetExportServicer interface {
	ExportBudgetReport(ctx context.Context, userID string, opts ExportOptions) (*ExportResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
