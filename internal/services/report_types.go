package services

import (
	"time"

	"budgetlens/internal/analytics"
)

// ReportPeriod is the date window a report covers.
type ReportPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// TransactionSummary is a contributing transaction listed under a category.
type TransactionSummary struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// CategoryBreakdown is the spend of one allocated category within a snapshot.
type CategoryBreakdown struct {
	CategoryID            string               `json:"category_id"`
	CategoryName          string               `json:"category_name"`
	CategoryPath          string               `json:"category_path,omitempty"`
	AllocatedAmount       float64              `json:"allocated_amount"`
	SpentAmount           float64              `json:"spent_amount"`
	RemainingAmount       float64              `json:"remaining_amount"`
	UtilizationPercentage float64              `json:"utilization_percentage"`
	PercentageOfTotal     float64              `json:"percentage_of_total"`
	Status                analytics.Status     `json:"status"`
	IsFlexible            bool                 `json:"is_flexible"`
	Priority              int                  `json:"priority"`
	Transactions          []TransactionSummary `json:"transactions"`
}

// DailyProgress is the spend of one calendar day and the running total.
type DailyProgress struct {
	Date               string  `json:"date"`
	Spent              float64 `json:"spent"`
	CumulativeSpent    float64 `json:"cumulative_spent"`
	ExpectedCumulative float64 `json:"expected_cumulative"`
	TransactionCount   int     `json:"transaction_count"`
}

// AlertType identifies the condition an alert was raised for.
type AlertType string

const (
	AlertBudgetThreshold  AlertType = "budget_threshold"
	AlertBudgetExceeded   AlertType = "budget_exceeded"
	AlertCategoryExceeded AlertType = "category_exceeded"
)

// AlertSeverity grades an alert.
type AlertSeverity string

const (
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is raised when spend crosses a threshold. Alerts are never stored.
type Alert struct {
	Type                  AlertType     `json:"type"`
	Message               string        `json:"message"`
	Severity              AlertSeverity `json:"severity"`
	CurrentAmount         float64       `json:"current_amount"`
	LimitAmount           float64       `json:"limit_amount"`
	UtilizationPercentage float64       `json:"utilization_percentage"`
	BudgetID              string        `json:"budget_id"`
	BudgetName            string        `json:"budget_name"`
	CategoryID            string        `json:"category_id,omitempty"`
}

// BudgetAnalytics is the snapshot of one budget over one window.
type BudgetAnalytics struct {
	BudgetID              string              `json:"budget_id"`
	BudgetName            string              `json:"budget_name"`
	Currency              string              `json:"currency"`
	Period                ReportPeriod        `json:"period"`
	TotalAllocated        float64             `json:"total_allocated"`
	TotalSpent            float64             `json:"total_spent"`
	RemainingAmount       float64             `json:"remaining_amount"`
	UtilizationPercentage float64             `json:"utilization_percentage"`
	UnallocatedSpent      float64             `json:"unallocated_spent"`
	TransactionCount      int                 `json:"transaction_count"`
	Status                analytics.Status    `json:"status"`
	CategoryBreakdown     []CategoryBreakdown `json:"category_breakdown"`
	DailyProgress         []DailyProgress     `json:"daily_progress"`
	Alerts                []Alert             `json:"alerts"`
}

// InsightType says whether an insight is advice or a warning.
type InsightType string

const (
	InsightRecommendation InsightType = "recommendation"
	InsightWarning        InsightType = "warning"
)

// Insight is a generated textual observation.
type Insight struct {
	Type       InsightType     `json:"type"`
	Priority   analytics.Level `json:"priority"`
	Message    string          `json:"message"`
	CategoryID string          `json:"category_id,omitempty"`
}

// PerformanceSummary is the budget-level part of a performance report.
type PerformanceSummary struct {
	TotalAllocated        float64          `json:"total_allocated"`
	TotalSpent            float64          `json:"total_spent"`
	RemainingAmount       float64          `json:"remaining_amount"`
	UtilizationPercentage float64          `json:"utilization_percentage"`
	VarianceAmount        float64          `json:"variance_amount"`
	VariancePercentage    float64          `json:"variance_percentage"`
	UnallocatedSpent      float64          `json:"unallocated_spent"`
	Status                analytics.Status `json:"status"`
}

// CategoryPerformance is the variance of one allocated category.
type CategoryPerformance struct {
	CategoryID            string           `json:"category_id"`
	CategoryName          string           `json:"category_name"`
	AllocatedAmount       float64          `json:"allocated_amount"`
	SpentAmount           float64          `json:"spent_amount"`
	VarianceAmount        float64          `json:"variance_amount"`
	VariancePercentage    float64          `json:"variance_percentage"`
	UtilizationPercentage float64          `json:"utilization_percentage"`
	Status                analytics.Status `json:"status"`
}

// PerformanceReport compares spend against allocation for a window.
type PerformanceReport struct {
	BudgetID            string                `json:"budget_id"`
	BudgetName          string                `json:"budget_name"`
	Currency            string                `json:"currency"`
	Period              ReportPeriod          `json:"period"`
	Performance         PerformanceSummary    `json:"performance"`
	CategoryPerformance []CategoryPerformance `json:"category_performance"`
	Insights            []Insight             `json:"insights"`
	DailyProgress       []DailyProgress       `json:"daily_progress,omitempty"`
	Alerts              []Alert               `json:"alerts"`
	GeneratedAt         time.Time             `json:"generated_at"`
}

// BudgetVsActualSummary is the budget-level comparison.
type BudgetVsActualSummary struct {
	TotalBudgeted      float64          `json:"total_budgeted"`
	TotalActual        float64          `json:"total_actual"`
	Variance           float64          `json:"variance"`
	VariancePercentage float64          `json:"variance_percentage"`
	Status             analytics.Status `json:"status"`
}

// CategoryComparison compares one category's budgeted and actual spend.
type CategoryComparison struct {
	CategoryID         string                     `json:"category_id"`
	CategoryName       string                     `json:"category_name"`
	Budgeted           float64                    `json:"budgeted"`
	Actual             float64                    `json:"actual"`
	Variance           float64                    `json:"variance"`
	VariancePercentage float64                    `json:"variance_percentage"`
	Efficiency         float64                    `json:"efficiency"`
	EfficiencyStatus   analytics.EfficiencyStatus `json:"efficiency_status"`
	Status             analytics.Status           `json:"status"`
}

// BudgetVsActualReport lists budgeted and actual spend side by side.
type BudgetVsActualReport struct {
	BudgetID           string                `json:"budget_id"`
	BudgetName         string                `json:"budget_name"`
	Currency           string                `json:"currency"`
	Period             ReportPeriod          `json:"period"`
	Summary            BudgetVsActualSummary `json:"summary"`
	CategoryComparison []CategoryComparison  `json:"category_comparison"`
	GeneratedAt        time.Time             `json:"generated_at"`
}

// TrendPoint is the spend of one month.
type TrendPoint struct {
	Period                string  `json:"period"`
	Spent                 float64 `json:"spent"`
	Budgeted              float64 `json:"budgeted"`
	Variance              float64 `json:"variance"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
	ChangePercentage      float64 `json:"change_percentage"`
	TransactionCount      int     `json:"transaction_count"`
}

// TrendProjection extrapolates the monthly series one period ahead.
type TrendProjection struct {
	Method               string                   `json:"method"`
	NextPeriod           string                   `json:"next_period"`
	ProjectedSpend       float64                  `json:"projected_spend"`
	ProjectedUtilization float64                  `json:"projected_utilization"`
	AverageMonthlySpend  float64                  `json:"average_monthly_spend"`
	TrendDirection       analytics.TrendDirection `json:"trend_direction"`
	Slope                float64                  `json:"slope"`
	RSquared             float64                  `json:"r_squared"`
	MonthlyBudget        float64                  `json:"monthly_budget"`
	PeriodsAnalyzed      int                      `json:"periods_analyzed"`
	PeriodsWithSpend     int                      `json:"periods_with_spend"`
}

// CategoryTrend is the monthly direction of one category's spend.
type CategoryTrend struct {
	CategoryID          string                   `json:"category_id"`
	CategoryName        string                   `json:"category_name"`
	TotalSpent          float64                  `json:"total_spent"`
	AverageMonthlySpend float64                  `json:"average_monthly_spend"`
	TrendDirection      analytics.TrendDirection `json:"trend_direction"`
	Slope               float64                  `json:"slope"`
}

// TrendAnalysis buckets spend by month over a history wider than the window.
type TrendAnalysis struct {
	BudgetID       string          `json:"budget_id"`
	BudgetName     string          `json:"budget_name"`
	Currency       string          `json:"currency"`
	Period         ReportPeriod    `json:"period"`
	Trends         []TrendPoint    `json:"trends"`
	CategoryTrends []CategoryTrend `json:"category_trends"`
	Projections    TrendProjection `json:"projections"`
	Insights       []Insight       `json:"insights"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// VarianceSummary totals category variances. Favorable and unfavorable
// variances are both reported as positive magnitudes.
type VarianceSummary struct {
	TotalVariance           float64 `json:"total_variance"`
	TotalVariancePercentage float64 `json:"total_variance_percentage"`
	FavorableVariances      float64 `json:"favorable_variances"`
	UnfavorableVariances    float64 `json:"unfavorable_variances"`
	NetVariance             float64 `json:"net_variance"`
}

// VarianceRecord is the classified variance of one category.
type VarianceRecord struct {
	CategoryID         string                 `json:"category_id"`
	CategoryName       string                 `json:"category_name"`
	AllocatedAmount    float64                `json:"allocated_amount"`
	SpentAmount        float64                `json:"spent_amount"`
	Variance           float64                `json:"variance"`
	VariancePercentage float64                `json:"variance_percentage"`
	VarianceType       analytics.VarianceType `json:"variance_type"`
	Impact             analytics.Level        `json:"impact"`
}

// VarianceAnalysis classifies each category's variance.
type VarianceAnalysis struct {
	BudgetID          string           `json:"budget_id"`
	BudgetName        string           `json:"budget_name"`
	Currency          string           `json:"currency"`
	Period            ReportPeriod     `json:"period"`
	VarianceSummary   VarianceSummary  `json:"variance_summary"`
	CategoryVariances []VarianceRecord `json:"category_variances"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// Scenario names a forecast branch.
type Scenario string

const (
	ScenarioOptimistic  Scenario = "optimistic"
	ScenarioRealistic   Scenario = "realistic"
	ScenarioPessimistic Scenario = "pessimistic"
)

// Methodology says what a forecast was projected from.
type Methodology string

const (
	MethodologyHistorical Methodology = "historical"
	MethodologyBudget     Methodology = "budget_based"
)

// ForecastScenario is one fixed-probability forecast branch.
type ForecastScenario struct {
	Scenario          Scenario `json:"scenario"`
	Probability       float64  `json:"probability"`
	ProjectedSpend    float64  `json:"projected_spend"`
	ProjectedVariance float64  `json:"projected_variance"`
}

// CategoryForecast projects one category's spend over the forecast window.
type CategoryForecast struct {
	CategoryID           string                   `json:"category_id"`
	CategoryName         string                   `json:"category_name"`
	AllocatedAmount      float64                  `json:"allocated_amount"`
	HistoricalSpent      float64                  `json:"historical_spent"`
	ProjectedSpend       float64                  `json:"projected_spend"`
	ProjectedVariance    float64                  `json:"projected_variance"`
	ProjectedUtilization float64                  `json:"projected_utilization"`
	Status               analytics.Status         `json:"status"`
	TrendDirection       analytics.TrendDirection `json:"trend_direction"`
	Confidence           analytics.Level          `json:"confidence"`
}

// RiskFactor is a condition that threatens the forecast.
type RiskFactor struct {
	Factor      string          `json:"factor"`
	Description string          `json:"description"`
	Severity    analytics.Level `json:"severity"`
	CategoryID  string          `json:"category_id,omitempty"`
}

// BudgetForecast projects spend over a future window from prior history.
type BudgetForecast struct {
	BudgetID          string             `json:"budget_id"`
	BudgetName        string             `json:"budget_name"`
	Currency          string             `json:"currency"`
	ForecastPeriod    ReportPeriod       `json:"forecast_period"`
	HistoricalPeriod  ReportPeriod       `json:"historical_period"`
	Methodology       Methodology        `json:"methodology"`
	Confidence        analytics.Level    `json:"confidence"`
	HistoricalSpent   float64            `json:"historical_spent"`
	DailySpendRate    float64            `json:"daily_spend_rate"`
	BudgetAmount      float64            `json:"budget_amount"`
	Scenarios         []ForecastScenario `json:"scenarios"`
	CategoryForecasts []CategoryForecast `json:"category_forecasts"`
	RiskFactors       []RiskFactor       `json:"risk_factors"`
	Recommendations   []Insight          `json:"recommendations"`
	GeneratedAt       time.Time          `json:"generated_at"`
}

// CategoryStatistics is the transaction statistics of one category.
type CategoryStatistics struct {
	CategoryID               string               `json:"category_id"`
	CategoryName             string               `json:"category_name"`
	CategoryPath             string               `json:"category_path,omitempty"`
	AllocatedAmount          float64              `json:"allocated_amount"`
	SpentAmount              float64              `json:"spent_amount"`
	PercentageOfTotal        float64              `json:"percentage_of_total"`
	TransactionCount         int                  `json:"transaction_count"`
	AverageTransactionAmount float64              `json:"average_transaction_amount"`
	LargestTransaction       float64              `json:"largest_transaction"`
	SmallestTransaction      float64              `json:"smallest_transaction"`
	Status                   analytics.Status     `json:"status"`
	Transactions             []TransactionSummary `json:"transactions,omitempty"`
}

// CategoryRank is one entry in a top-N list.
type CategoryRank struct {
	CategoryID       string  `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	SpentAmount      float64 `json:"spent_amount"`
	TransactionCount int     `json:"transaction_count"`
}

// CategoryEfficiency applies the efficiency rule to one category.
type CategoryEfficiency struct {
	CategoryID   string                     `json:"category_id"`
	CategoryName string                     `json:"category_name"`
	Efficiency   float64                    `json:"efficiency"`
	Status       analytics.EfficiencyStatus `json:"status"`
}

// SpendingPatterns ranks categories by spend and activity.
type SpendingPatterns struct {
	TopSpendingCategories []CategoryRank       `json:"top_spending_categories"`
	MostActiveCategories  []CategoryRank       `json:"most_active_categories"`
	CategoryEfficiency    []CategoryEfficiency `json:"category_efficiency"`
}

// BreakdownTotals are the budget-level totals of a category breakdown.
type BreakdownTotals struct {
	TotalAllocated   float64 `json:"total_allocated"`
	TotalSpent       float64 `json:"total_spent"`
	UnallocatedSpent float64 `json:"unallocated_spent"`
	TransactionCount int     `json:"transaction_count"`
}

// CategoryBreakdownReport details transaction statistics per category.
type CategoryBreakdownReport struct {
	BudgetID         string               `json:"budget_id"`
	BudgetName       string               `json:"budget_name"`
	Currency         string               `json:"currency"`
	Period           ReportPeriod         `json:"period"`
	Totals           BreakdownTotals      `json:"totals"`
	Categories       []CategoryStatistics `json:"categories"`
	SpendingPatterns SpendingPatterns     `json:"spending_patterns"`
	Insights         []Insight            `json:"insights"`
	GeneratedAt      time.Time            `json:"generated_at"`
}
