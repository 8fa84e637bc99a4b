package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetlens/internal/analytics"
	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/testutil"
)

func TestGetBudgetPerformanceReport(t *testing.T) {
	ctx := context.Background()

	t.Run("under_budget", func(t *testing.T) {
		f := newFixture()
		f.txs.add(testUser, "food", 1500, noon(time.March, 4))
		f.txs.add(testUser, "rent", 1500, noon(time.March, 1))

		report, err := f.reports().GetBudgetPerformanceReport(ctx, testUser, "b1", time.Time{}, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, -1000.0, report.Performance.VarianceAmount)
		assert.Equal(t, -25.0, report.Performance.VariancePercentage)
		assert.Equal(t, analytics.StatusUnder, report.Performance.Status)
		assert.Equal(t, fixedNow, report.GeneratedAt)

		require.Len(t, report.CategoryPerformance, 2)
		food := report.CategoryPerformance[0]
		assert.Equal(t, -500.0, food.VarianceAmount)
		assert.Equal(t, -25.0, food.VariancePercentage)
		assert.Equal(t, 75.0, food.UtilizationPercentage)

		require.NotEmpty(t, report.Insights)
		assert.Equal(t, "Budget is under by $1000.00 (25%)", report.Insights[0].Message)
		assert.Equal(t, analytics.LevelMedium, report.Insights[0].Priority)
		assert.Equal(t, InsightRecommendation, report.Insights[0].Type)

		require.Len(t, report.Insights, 3)
		assert.Equal(t, "food", report.Insights[1].CategoryID)
		assert.Contains(t, report.Insights[1].Message, "consider reallocating part of the remaining $500.00")
		assert.NotEmpty(t, report.DailyProgress)
	})

	t.Run("over_budget", func(t *testing.T) {
		f := newFixture()
		f.txs.add(testUser, "food", 2500, noon(time.March, 4))
		f.txs.add(testUser, "rent", 2000, noon(time.March, 1))

		report, err := f.reports().GetBudgetPerformanceReport(ctx, testUser, "b1", time.Time{}, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, analytics.StatusOver, report.Performance.Status)
		assert.Equal(t, "Budget is over by $500.00 (12.5%)", report.Insights[0].Message)
		assert.Equal(t, InsightWarning, report.Insights[0].Type)
		assert.Equal(t, analytics.LevelHigh, report.Insights[0].Priority)

		require.Len(t, report.Insights, 2)
		assert.Equal(t, "Food is over budget by $500.00 (25%)", report.Insights[1].Message)
		assert.Equal(t, analytics.LevelHigh, report.Insights[1].Priority)

		require.Len(t, report.Alerts, 2)
		assert.Equal(t, AlertBudgetExceeded, report.Alerts[0].Type)
		assert.Equal(t, SeverityCritical, report.Alerts[0].Severity)
	})

	t.Run("exactly_on_target", func(t *testing.T) {
		f := newFixture()
		f.txs.add(testUser, "food", 2000, noon(time.March, 4))
		f.txs.add(testUser, "rent", 2000, noon(time.March, 1))

		report, err := f.reports().GetBudgetPerformanceReport(ctx, testUser, "b1", time.Time{}, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, analytics.StatusOnTrack, report.Performance.Status)
		assert.Equal(t, "Budget is exactly on target", report.Insights[0].Message)
		assert.Equal(t, analytics.LevelLow, report.Insights[0].Priority)
	})

	t.Run("unallocated_spend_warning", func(t *testing.T) {
		f := newFixture()
		f.txs.ignoreCategoryFilter = true
		f.txs.add(testUser, "travel", 120, noon(time.March, 4))

		report, err := f.reports().GetBudgetPerformanceReport(ctx, testUser, "b1", time.Time{}, time.Time{})
		require.NoError(t, err)

		last := report.Insights[len(report.Insights)-1]
		assert.Equal(t, "$120.00 was spent in categories without an allocation", last.Message)
		assert.Equal(t, InsightWarning, last.Type)
	})
}

func TestGetBudgetVsActualReport(t *testing.T) {
	f := newFixture()
	f.txs.add(testUser, "food", 1500, noon(time.March, 4))
	f.txs.add(testUser, "rent", 2000, noon(time.March, 1))

	report, err := f.reports().GetBudgetVsActualReport(context.Background(), testUser, "b1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 4000.0, report.Summary.TotalBudgeted)
	assert.Equal(t, 3500.0, report.Summary.TotalActual)
	assert.Equal(t, -500.0, report.Summary.Variance)
	assert.Equal(t, -12.5, report.Summary.VariancePercentage)

	require.Len(t, report.CategoryComparison, 2)
	food := report.CategoryComparison[0]
	assert.Equal(t, 0.75, food.Efficiency)
	assert.Equal(t, analytics.Efficient, food.EfficiencyStatus)
	rent := report.CategoryComparison[1]
	assert.Equal(t, 1.0, rent.Efficiency)
	assert.Equal(t, analytics.Inefficient, rent.EfficiencyStatus)
	assert.Equal(t, analytics.StatusOnTrack, rent.Status)
}

func TestGetBudgetVarianceAnalysis(t *testing.T) {
	f := newFixture()
	f.txs.add(testUser, "food", 1500, noon(time.March, 4))
	f.txs.add(testUser, "rent", 2000, noon(time.March, 1))

	report, err := f.reports().GetBudgetVarianceAnalysis(context.Background(), testUser, "b1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, -500.0, report.VarianceSummary.TotalVariance)
	assert.Equal(t, -12.5, report.VarianceSummary.TotalVariancePercentage)
	assert.Equal(t, 500.0, report.VarianceSummary.FavorableVariances)
	assert.Equal(t, 0.0, report.VarianceSummary.UnfavorableVariances)
	assert.Equal(t, report.VarianceSummary.TotalVariance, report.VarianceSummary.NetVariance)

	require.Len(t, report.CategoryVariances, 2)
	food := report.CategoryVariances[0]
	assert.Equal(t, analytics.Favorable, food.VarianceType)
	assert.Equal(t, analytics.LevelHigh, food.Impact)
	rent := report.CategoryVariances[1]
	assert.Equal(t, 0.0, rent.Variance)
	assert.Equal(t, analytics.Favorable, rent.VarianceType)
	assert.Equal(t, analytics.LevelLow, rent.Impact)

	t.Run("overspend_is_unfavorable", func(t *testing.T) {
		f := newFixture()
		f.txs.add(testUser, "food", 2300, noon(time.March, 4))

		report, err := f.reports().GetBudgetVarianceAnalysis(context.Background(), testUser, "b1", time.Time{}, time.Time{})
		require.NoError(t, err)

		food := report.CategoryVariances[0]
		assert.Equal(t, 300.0, food.Variance)
		assert.Equal(t, analytics.Unfavorable, food.VarianceType)
		assert.Equal(t, analytics.LevelMedium, food.Impact)
		assert.Equal(t, 300.0, report.VarianceSummary.UnfavorableVariances)
		assert.Equal(t, 2000.0, report.VarianceSummary.FavorableVariances)
	})
}

func TestGetBudgetCategoryBreakdown(t *testing.T) {
	f := newFixture()
	f.txs.add(testUser, "food", 100, noon(time.March, 2))
	f.txs.add(testUser, "food", 300, noon(time.March, 3))
	f.txs.add(testUser, "food", 200, noon(time.March, 4))
	f.txs.add(testUser, "rent", 2000, noon(time.March, 1))

	report, err := f.reports().GetBudgetCategoryBreakdown(context.Background(), testUser, "b1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 2600.0, report.Totals.TotalSpent)
	assert.Equal(t, 4, report.Totals.TransactionCount)

	require.Len(t, report.Categories, 2)
	food := report.Categories[0]
	assert.Equal(t, 3, food.TransactionCount)
	assert.Equal(t, 200.0, food.AverageTransactionAmount)
	assert.Equal(t, 300.0, food.LargestTransaction)
	assert.Equal(t, 100.0, food.SmallestTransaction)
	assert.Equal(t, 23.08, food.PercentageOfTotal)
	assert.Len(t, food.Transactions, 3)

	patterns := report.SpendingPatterns
	require.Len(t, patterns.TopSpendingCategories, 2)
	assert.Equal(t, "rent", patterns.TopSpendingCategories[0].CategoryID)
	assert.Equal(t, "food", patterns.MostActiveCategories[0].CategoryID)
	require.Len(t, patterns.CategoryEfficiency, 2)
	assert.Equal(t, analytics.Efficient, patterns.CategoryEfficiency[0].Status)
	assert.Equal(t, analytics.Inefficient, patterns.CategoryEfficiency[1].Status)

	require.Len(t, report.Insights, 2)
	assert.Equal(t, "Rent accounts for 76.92% of total spending", report.Insights[0].Message)
	assert.Equal(t, analytics.LevelMedium, report.Insights[0].Priority)
	assert.Equal(t, "Rent has used 100% of its allocation", report.Insights[1].Message)
	assert.Equal(t, InsightWarning, report.Insights[1].Type)

	t.Run("idle_category", func(t *testing.T) {
		f := newFixture()
		f.txs.add(testUser, "food", 100, noon(time.March, 2))

		report, err := f.reports().GetBudgetCategoryBreakdown(context.Background(), testUser, "b1", time.Time{}, time.Time{})
		require.NoError(t, err)

		assert.Len(t, report.SpendingPatterns.TopSpendingCategories, 1)
		last := report.Insights[len(report.Insights)-1]
		assert.Equal(t, "No spending recorded in Rent; consider reallocating its $2000.00", last.Message)
		assert.Equal(t, "rent", last.CategoryID)
	})
}

func TestReportsBudgetNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	reports := f.reports()

	builders := map[string]func() error{
		"performance": func() error {
			_, err := reports.GetBudgetPerformanceReport(ctx, testUser, "missing", time.Time{}, time.Time{})
			return err
		},
		"budget_vs_actual": func() error {
			_, err := reports.GetBudgetVsActualReport(ctx, testUser, "missing", time.Time{}, time.Time{})
			return err
		},
		"trends": func() error {
			_, err := reports.GetBudgetTrendAnalysis(ctx, testUser, "missing", time.Time{}, time.Time{})
			return err
		},
		"variance": func() error {
			_, err := reports.GetBudgetVarianceAnalysis(ctx, testUser, "missing", time.Time{}, time.Time{})
			return err
		},
		"forecast": func() error {
			_, err := reports.GetBudgetForecast(ctx, testUser, "missing", time.Time{}, time.Time{})
			return err
		},
		"category_breakdown": func() error {
			_, err := reports.GetBudgetCategoryBreakdown(ctx, testUser, "missing", time.Time{}, time.Time{})
			return err
		},
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			err := build()
			testutil.AssertErrorKind(t, err, apperrors.KindNotFound)
			assert.Equal(t, "Budget not found", err.Error())
		})
	}
	assert.Equal(t, 0, f.txs.calls())
}

func TestReportsAreDeterministic(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.txs.add(testUser, "food", 700, noon(time.January, 15))
	f.txs.add(testUser, "food", 900, noon(time.February, 15))
	f.txs.add(testUser, "rent", 1800, noon(time.March, 1))
	reports := f.reports()

	first, err := reports.GetBudgetTrendAnalysis(ctx, testUser, "b1", time.Time{}, time.Time{})
	require.NoError(t, err)
	second, err := reports.GetBudgetTrendAnalysis(ctx, testUser, "b1", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	f1, err := reports.GetBudgetForecast(ctx, testUser, "b1", time.Time{}, time.Time{})
	require.NoError(t, err)
	f2, err := reports.GetBudgetForecast(ctx, testUser, "b1", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
}
