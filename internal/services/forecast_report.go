package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"budgetlens/internal/analytics"
	"budgetlens/internal/models"
)

// Scenario probabilities. They are fixed, not derived from the history.
const (
	OptimisticProbability  = 0.2
	RealisticProbability   = 0.6
	PessimisticProbability = 0.2
)

// Scenario spread bounds. The optimistic and pessimistic projections sit
// this fraction below and above the realistic one; with history the spread
// is the coefficient of variation of monthly spend, clamped to the bounds.
const (
	minScenarioSpread         = 0.10
	maxScenarioSpread         = 0.50
	budgetBasedScenarioSpread = 0.15
)

// Confidence cut points, in months of history with spend.
const (
	highConfidenceMonths   = 4
	mediumConfidenceMonths = 2
)

// underusedUtilization: categories projected below this utilization are
// suggested for reallocation.
const underusedUtilization = 50.0

// GetBudgetForecast projects spend over [forecastStart, forecastEnd] from the
// ForecastHistoryMonths before forecastStart. Without any historical spend
// the projection falls back to the budget's own pace.
func (s *budgetReportService) GetBudgetForecast(ctx context.Context, userID, budgetID string, forecastStart, forecastEnd time.Time) (*BudgetForecast, error) {
	budget, err := s.core.loadBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	forecastStart, forecastEnd, err = resolveWindow(budget, forecastStart, forecastEnd)
	if err != nil {
		return nil, err
	}

	historyStart := forecastStart.AddDate(0, -s.core.cfg.ForecastHistoryMonths, 0)
	historyEnd := forecastStart.Add(-time.Nanosecond)
	a, err := s.core.analyze(ctx, userID, budget, historyStart, historyEnd)
	if err != nil {
		return nil, err
	}

	historyDays := analytics.DaysInclusive(historyStart, historyEnd)
	forecastDays := analytics.DaysInclusive(forecastStart, forecastEnd)
	budgetDays := analytics.DaysInclusive(budget.StartDate, budget.EndDate)
	months := analytics.MonthlyTotals(a.transactions, historyStart, historyEnd)
	series := periodSpend(months)
	activeMonths := periodsWithSpend(months)

	f := &BudgetForecast{
		BudgetID:          budget.ID,
		BudgetName:        budget.Name,
		Currency:          budget.Currency,
		ForecastPeriod:    ReportPeriod{StartDate: forecastStart, EndDate: forecastEnd},
		HistoricalPeriod:  ReportPeriod{StartDate: historyStart, EndDate: historyEnd},
		HistoricalSpent:   analytics.Round2(a.agg.TotalSpent),
		BudgetAmount:      analytics.Round2(budget.TotalAmount),
		Confidence:        confidenceFor(activeMonths),
		CategoryForecasts: make([]CategoryForecast, 0, len(a.agg.Categories)),
		GeneratedAt:       s.now(),
	}

	var dailyRate, spread float64
	if a.agg.TransactionCount > 0 {
		f.Methodology = MethodologyHistorical
		dailyRate = a.agg.TotalSpent / float64(historyDays)
		spread = scenarioSpread(series)
	} else {
		f.Methodology = MethodologyBudget
		dailyRate = budget.TotalAmount / float64(budgetDays)
		spread = budgetBasedScenarioSpread
	}
	f.DailySpendRate = analytics.Round2(dailyRate)

	realistic := dailyRate * float64(forecastDays)
	f.Scenarios = []ForecastScenario{
		scenario(ScenarioOptimistic, OptimisticProbability, realistic*(1-spread), budget.TotalAmount),
		scenario(ScenarioRealistic, RealisticProbability, realistic, budget.TotalAmount),
		scenario(ScenarioPessimistic, PessimisticProbability, realistic*(1+spread), budget.TotalAmount),
	}

	for _, c := range a.agg.Categories {
		var projected float64
		if f.Methodology == MethodologyHistorical {
			projected = c.SpentAmount / float64(historyDays) * float64(forecastDays)
		} else {
			projected = c.AllocatedAmount / float64(budgetDays) * float64(forecastDays)
		}
		catMonths := analytics.MonthlyTotals(c.Transactions, historyStart, historyEnd)
		catSeries := periodSpend(catMonths)
		f.CategoryForecasts = append(f.CategoryForecasts, CategoryForecast{
			CategoryID:           c.CategoryID,
			CategoryName:         a.categoryName(c.CategoryID),
			AllocatedAmount:      analytics.Round2(c.AllocatedAmount),
			HistoricalSpent:      analytics.Round2(c.SpentAmount),
			ProjectedSpend:       analytics.Round2(projected),
			ProjectedVariance:    analytics.Round2(analytics.Variance(projected, c.AllocatedAmount)),
			ProjectedUtilization: analytics.Round2(analytics.Utilization(projected, c.AllocatedAmount)),
			Status:               analytics.StatusOf(projected, c.AllocatedAmount),
			TrendDirection:       analytics.LinearRegression(catSeries).Direction(analytics.Mean(catSeries)),
			Confidence:           confidenceFor(periodsWithSpend(catMonths)),
		})
	}

	trend := analytics.LinearRegression(series).Direction(analytics.Mean(series))
	f.RiskFactors = forecastRisks(f, budget, a.agg.UnallocatedSpent, activeMonths, trend)
	f.Recommendations = forecastRecommendations(f, forecastDays)
	return f, nil
}

func scenario(name Scenario, probability, projected, budgetAmount float64) ForecastScenario {
	return ForecastScenario{
		Scenario:          name,
		Probability:       probability,
		ProjectedSpend:    analytics.Round2(projected),
		ProjectedVariance: analytics.Round2(analytics.Variance(projected, budgetAmount)),
	}
}

// scenarioSpread is the coefficient of variation of monthly spend, clamped.
func scenarioSpread(series []float64) float64 {
	mean := analytics.Mean(series)
	if mean <= 0 {
		return minScenarioSpread
	}
	cv := analytics.StdDev(series) / mean
	return math.Min(maxScenarioSpread, math.Max(minScenarioSpread, cv))
}

func confidenceFor(monthsWithSpend int) analytics.Level {
	switch {
	case monthsWithSpend >= highConfidenceMonths:
		return analytics.LevelHigh
	case monthsWithSpend >= mediumConfidenceMonths:
		return analytics.LevelMedium
	default:
		return analytics.LevelLow
	}
}

func forecastRisks(f *BudgetForecast, budget *models.Budget, unallocated float64, activeMonths int, trend analytics.TrendDirection) []RiskFactor {
	risks := []RiskFactor{}
	currency := f.Currency
	realistic := f.Scenarios[1]
	pessimistic := f.Scenarios[2]

	switch {
	case realistic.ProjectedVariance > 0:
		risks = append(risks, RiskFactor{
			Factor: "projected_overspend",
			Description: fmt.Sprintf("Realistic projection of %s exceeds the budget of %s",
				analytics.FormatMoney(realistic.ProjectedSpend, currency), analytics.FormatMoney(budget.TotalAmount, currency)),
			Severity: analytics.LevelHigh,
		})
	case pessimistic.ProjectedVariance > 0:
		risks = append(risks, RiskFactor{
			Factor: "pessimistic_overspend",
			Description: fmt.Sprintf("Pessimistic projection of %s exceeds the budget of %s",
				analytics.FormatMoney(pessimistic.ProjectedSpend, currency), analytics.FormatMoney(budget.TotalAmount, currency)),
			Severity: analytics.LevelMedium,
		})
	}

	if trend == analytics.TrendIncreasing {
		risks = append(risks, RiskFactor{
			Factor:      "rising_spend",
			Description: "Monthly spending has been increasing over the historical period",
			Severity:    analytics.LevelMedium,
		})
	}

	for _, c := range f.CategoryForecasts {
		if c.Status != analytics.StatusOver {
			continue
		}
		severity := analytics.LevelMedium
		if analytics.ClassifyImpact(analytics.VariancePercentage(c.ProjectedSpend, c.AllocatedAmount)) == analytics.LevelHigh {
			severity = analytics.LevelHigh
		}
		risks = append(risks, RiskFactor{
			Factor: "category_overspend",
			Description: fmt.Sprintf("%s is projected to exceed its allocation by %s",
				c.CategoryName, analytics.FormatMoney(c.ProjectedVariance, currency)),
			Severity:   severity,
			CategoryID: c.CategoryID,
		})
	}

	if f.Methodology == MethodologyBudget || activeMonths < mediumConfidenceMonths {
		risks = append(risks, RiskFactor{
			Factor:      "limited_history",
			Description: "Too little spending history for a reliable projection",
			Severity:    analytics.LevelLow,
		})
	}

	if unallocated > 0 {
		risks = append(risks, RiskFactor{
			Factor: "unallocated_spend",
			Description: fmt.Sprintf("%s of historical spend had no category allocation",
				analytics.FormatMoney(unallocated, currency)),
			Severity: analytics.LevelLow,
		})
	}
	return risks
}

func forecastRecommendations(f *BudgetForecast, forecastDays int) []Insight {
	recs := []Insight{}
	currency := f.Currency
	realistic := f.Scenarios[1]

	if realistic.ProjectedVariance > 0 {
		perDay := realistic.ProjectedVariance / float64(forecastDays)
		recs = append(recs, Insight{
			Type:     InsightWarning,
			Priority: analytics.LevelHigh,
			Message: fmt.Sprintf("Reduce spending by about %s per day to stay within budget",
				analytics.FormatMoney(perDay, currency)),
		})
	}

	for _, c := range f.CategoryForecasts {
		switch {
		case c.Status == analytics.StatusOver:
			recs = append(recs, Insight{
				Type:     InsightWarning,
				Priority: analytics.InsightPriority(c.ProjectedVariance, analytics.VariancePercentage(c.ProjectedSpend, c.AllocatedAmount)),
				Message: fmt.Sprintf("Projected spend in %s exceeds its allocation by %s",
					c.CategoryName, analytics.FormatMoney(c.ProjectedVariance, currency)),
				CategoryID: c.CategoryID,
			})
		case f.Methodology == MethodologyHistorical && c.AllocatedAmount > 0 && c.ProjectedUtilization < underusedUtilization:
			recs = append(recs, Insight{
				Type:     InsightRecommendation,
				Priority: analytics.LevelLow,
				Message: fmt.Sprintf("%s is projected to use only %s%% of its allocation; consider reallocating",
					c.CategoryName, analytics.FormatPercent(c.ProjectedUtilization)),
				CategoryID: c.CategoryID,
			})
		}
	}

	if len(recs) == 0 {
		recs = append(recs, Insight{
			Type:     InsightRecommendation,
			Priority: analytics.LevelLow,
			Message:  "Spending is on track to stay within budget",
		})
	}
	return recs
}
