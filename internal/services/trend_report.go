package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"budgetlens/internal/analytics"
	"budgetlens/internal/models"
)

// Projection methods.
const (
	ProjectionLinear  = "linear_regression"
	ProjectionAverage = "average"
)

// minRegressionPeriods is the number of months with spend needed to fit a trend line.
const minRegressionPeriods = 2

// GetBudgetTrendAnalysis buckets spend by month from TrendHistoryMonths
// before start through end and extrapolates the series one month ahead.
func (s *budgetReportService) GetBudgetTrendAnalysis(ctx context.Context, userID, budgetID string, start, end time.Time) (*TrendAnalysis, error) {
	budget, err := s.core.loadBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	start, end, err = resolveWindow(budget, start, end)
	if err != nil {
		return nil, err
	}
	historyStart := analytics.MonthStart(start).AddDate(0, -s.core.cfg.TrendHistoryMonths, 0)
	a, err := s.core.analyze(ctx, userID, budget, historyStart, end)
	if err != nil {
		return nil, err
	}

	monthlyBudget := monthlyAllocation(budget)
	months := analytics.MonthlyTotals(a.transactions, historyStart, end)

	report := &TrendAnalysis{
		BudgetID:       budget.ID,
		BudgetName:     budget.Name,
		Currency:       budget.Currency,
		Period:         ReportPeriod{StartDate: historyStart, EndDate: end},
		Trends:         make([]TrendPoint, 0, len(months)),
		CategoryTrends: make([]CategoryTrend, 0, len(a.agg.Categories)),
		GeneratedAt:    s.now(),
	}

	series := make([]float64, 0, len(months))
	for i, m := range months {
		point := TrendPoint{
			Period:                m.Period,
			Spent:                 analytics.Round2(m.Spent),
			Budgeted:              analytics.Round2(monthlyBudget),
			Variance:              analytics.Round2(analytics.Variance(m.Spent, monthlyBudget)),
			UtilizationPercentage: analytics.Round2(analytics.Utilization(m.Spent, monthlyBudget)),
			TransactionCount:      m.Count,
		}
		if i > 0 {
			point.ChangePercentage = analytics.Round2(changePercentage(months[i-1].Spent, m.Spent))
		}
		report.Trends = append(report.Trends, point)
		series = append(series, m.Spent)
	}

	report.Projections = projectSeries(months, series, monthlyBudget)

	for _, c := range a.agg.Categories {
		catSeries := periodSpend(analytics.MonthlyTotals(c.Transactions, historyStart, end))
		fit := analytics.LinearRegression(catSeries)
		mean := analytics.Mean(catSeries)
		report.CategoryTrends = append(report.CategoryTrends, CategoryTrend{
			CategoryID:          c.CategoryID,
			CategoryName:        a.categoryName(c.CategoryID),
			TotalSpent:          analytics.Round2(c.SpentAmount),
			AverageMonthlySpend: analytics.Round2(mean),
			TrendDirection:      fit.Direction(mean),
			Slope:               analytics.Round2(fit.Slope),
		})
	}

	report.Insights = trendInsights(report)
	return report, nil
}

func projectSeries(months []analytics.PeriodTotal, series []float64, monthlyBudget float64) TrendProjection {
	mean := analytics.Mean(series)
	proj := TrendProjection{
		Method:              ProjectionAverage,
		AverageMonthlySpend: analytics.Round2(mean),
		TrendDirection:      analytics.TrendStable,
		MonthlyBudget:       analytics.Round2(monthlyBudget),
		PeriodsAnalyzed:     len(series),
		PeriodsWithSpend:    periodsWithSpend(months),
	}
	if len(months) > 0 {
		proj.NextPeriod = months[len(months)-1].Start.AddDate(0, 1, 0).Format(analytics.MonthLayout)
	}

	projected := mean
	if proj.PeriodsWithSpend >= minRegressionPeriods {
		fit := analytics.LinearRegression(series)
		proj.Method = ProjectionLinear
		proj.Slope = analytics.Round2(fit.Slope)
		proj.RSquared = analytics.Round4(fit.RSquared)
		proj.TrendDirection = fit.Direction(mean)
		projected = math.Max(0, fit.At(float64(len(series))))
	}
	proj.ProjectedSpend = analytics.Round2(projected)
	proj.ProjectedUtilization = analytics.Round2(analytics.Utilization(projected, monthlyBudget))
	return proj
}

func trendInsights(report *TrendAnalysis) []Insight {
	p := report.Projections
	currency := report.Currency
	insights := []Insight{}

	switch p.TrendDirection {
	case analytics.TrendIncreasing:
		insights = append(insights, Insight{
			Type:     InsightWarning,
			Priority: analytics.LevelMedium,
			Message:  fmt.Sprintf("Spending is increasing by about %s per month", analytics.FormatMoney(p.Slope, currency)),
		})
	case analytics.TrendDecreasing:
		insights = append(insights, Insight{
			Type:     InsightRecommendation,
			Priority: analytics.LevelLow,
			Message:  fmt.Sprintf("Spending is decreasing by about %s per month", analytics.FormatMoney(-p.Slope, currency)),
		})
	default:
		insights = append(insights, Insight{
			Type:     InsightRecommendation,
			Priority: analytics.LevelLow,
			Message:  fmt.Sprintf("Spending is stable at about %s per month", analytics.FormatMoney(p.AverageMonthlySpend, currency)),
		})
	}

	if p.MonthlyBudget > 0 && p.ProjectedUtilization > 100 {
		insights = append(insights, Insight{
			Type:     InsightWarning,
			Priority: analytics.LevelHigh,
			Message: fmt.Sprintf("Projected spend of %s for %s exceeds the monthly budget of %s",
				analytics.FormatMoney(p.ProjectedSpend, currency), p.NextPeriod,
				analytics.FormatMoney(p.MonthlyBudget, currency)),
		})
	}

	var peak *TrendPoint
	for i := range report.Trends {
		if report.Trends[i].Spent > 0 && (peak == nil || report.Trends[i].Spent > peak.Spent) {
			peak = &report.Trends[i]
		}
	}
	if peak != nil {
		insights = append(insights, Insight{
			Type:     InsightRecommendation,
			Priority: analytics.LevelLow,
			Message:  fmt.Sprintf("Highest spending was in %s (%s)", peak.Period, analytics.FormatMoney(peak.Spent, currency)),
		})
	}

	for _, c := range report.CategoryTrends {
		if c.TrendDirection != analytics.TrendIncreasing {
			continue
		}
		insights = append(insights, Insight{
			Type:       InsightWarning,
			Priority:   analytics.LevelMedium,
			Message:    fmt.Sprintf("%s spending is increasing by about %s per month", c.CategoryName, analytics.FormatMoney(c.Slope, currency)),
			CategoryID: c.CategoryID,
		})
	}
	return insights
}

// monthlyAllocation spreads the budget total evenly over the calendar months
// its window touches.
func monthlyAllocation(budget *models.Budget) float64 {
	months := 0
	last := analytics.MonthStart(budget.EndDate)
	for m := analytics.MonthStart(budget.StartDate); !m.After(last); m = m.AddDate(0, 1, 0) {
		months++
	}
	if months == 0 {
		months = 1
	}
	return budget.TotalAmount / float64(months)
}

// changePercentage is the change from prev to cur as a percentage of prev, 0 when prev is 0.
func changePercentage(prev, cur float64) float64 {
	if prev <= 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

func periodSpend(periods []analytics.PeriodTotal) []float64 {
	out := make([]float64, 0, len(periods))
	for _, p := range periods {
		out = append(out, p.Spent)
	}
	return out
}

func periodsWithSpend(periods []analytics.PeriodTotal) int {
	n := 0
	for _, p := range periods {
		if p.Spent > 0 {
			n++
		}
	}
	return n
}
