package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"budgetlens/internal/analytics"
)

// topCategoryCount is the length of the ranked category lists.
const topCategoryCount = 5

// dominantCategoryShare: a category taking at least this share of spend is flagged.
const dominantCategoryShare = 50.0

// budgetReportService builds reports on top of budget snapshots.
type budgetReportService struct {
	core *budgetAnalyticsService
}

// NewBudgetReportService creates a new BudgetReportServicer.
func NewBudgetReportService(providers Providers, cfg AnalyticsConfig) BudgetReportServicer {
	return &budgetReportService{core: newAnalyzer(providers, cfg)}
}

func (s *budgetReportService) now() time.Time {
	return s.core.cfg.Now().UTC()
}

// prepare loads the budget and analyzes it over the requested window.
func (s *budgetReportService) prepare(ctx context.Context, userID, budgetID string, start, end time.Time) (*analysis, error) {
	budget, err := s.core.loadBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	start, end, err = resolveWindow(budget, start, end)
	if err != nil {
		return nil, err
	}
	return s.core.analyze(ctx, userID, budget, start, end)
}

// GetBudgetPerformanceReport compares spend against allocation per category.
func (s *budgetReportService) GetBudgetPerformanceReport(ctx context.Context, userID, budgetID string, start, end time.Time) (*PerformanceReport, error) {
	a, err := s.prepare(ctx, userID, budgetID, start, end)
	if err != nil {
		return nil, err
	}
	snap := a.snapshot

	report := &PerformanceReport{
		BudgetID:   snap.BudgetID,
		BudgetName: snap.BudgetName,
		Currency:   snap.Currency,
		Period:     snap.Period,
		Performance: PerformanceSummary{
			TotalAllocated:        snap.TotalAllocated,
			TotalSpent:            snap.TotalSpent,
			RemainingAmount:       snap.RemainingAmount,
			UtilizationPercentage: snap.UtilizationPercentage,
			VarianceAmount:        analytics.Round2(analytics.Variance(snap.TotalSpent, snap.TotalAllocated)),
			VariancePercentage:    analytics.Round2(analytics.VariancePercentage(snap.TotalSpent, snap.TotalAllocated)),
			UnallocatedSpent:      snap.UnallocatedSpent,
			Status:                snap.Status,
		},
		CategoryPerformance: make([]CategoryPerformance, 0, len(snap.CategoryBreakdown)),
		DailyProgress:       snap.DailyProgress,
		Alerts:              snap.Alerts,
		GeneratedAt:         s.now(),
	}
	for _, c := range snap.CategoryBreakdown {
		report.CategoryPerformance = append(report.CategoryPerformance, CategoryPerformance{
			CategoryID:            c.CategoryID,
			CategoryName:          c.CategoryName,
			AllocatedAmount:       c.AllocatedAmount,
			SpentAmount:           c.SpentAmount,
			VarianceAmount:        analytics.Round2(analytics.Variance(c.SpentAmount, c.AllocatedAmount)),
			VariancePercentage:    analytics.Round2(analytics.VariancePercentage(c.SpentAmount, c.AllocatedAmount)),
			UtilizationPercentage: c.UtilizationPercentage,
			Status:                c.Status,
		})
	}
	report.Insights = performanceInsights(snap, report.Performance, report.CategoryPerformance)
	return report, nil
}

func performanceInsights(snap *BudgetAnalytics, perf PerformanceSummary, categories []CategoryPerformance) []Insight {
	insights := []Insight{budgetVarianceInsight(perf.VarianceAmount, perf.VariancePercentage, snap.Currency)}

	for _, c := range categories {
		switch {
		case c.Status == analytics.StatusOver:
			insights = append(insights, Insight{
				Type:     InsightWarning,
				Priority: analytics.InsightPriority(c.VarianceAmount, c.VariancePercentage),
				Message: fmt.Sprintf("%s is over budget by %s (%s%%)", c.CategoryName,
					analytics.FormatMoney(c.VarianceAmount, snap.Currency), analytics.FormatPercent(c.VariancePercentage)),
				CategoryID: c.CategoryID,
			})
		case c.AllocatedAmount > 0 && analytics.ClassifyImpact(c.VariancePercentage) == analytics.LevelHigh:
			insights = append(insights, Insight{
				Type:     InsightRecommendation,
				Priority: analytics.InsightPriority(c.VarianceAmount, c.VariancePercentage),
				Message: fmt.Sprintf("%s has used %s%% of its allocation; consider reallocating part of the remaining %s",
					c.CategoryName, analytics.FormatPercent(c.UtilizationPercentage),
					analytics.FormatMoney(-c.VarianceAmount, snap.Currency)),
				CategoryID: c.CategoryID,
			})
		}
	}

	if snap.UnallocatedSpent > 0 {
		insights = append(insights, Insight{
			Type:     InsightWarning,
			Priority: analytics.LevelMedium,
			Message: fmt.Sprintf("%s was spent in categories without an allocation",
				analytics.FormatMoney(snap.UnallocatedSpent, snap.Currency)),
		})
	}
	return insights
}

// budgetVarianceInsight describes the budget-level variance, e.g.
// "Budget is under by $1000.00 (25%)".
func budgetVarianceInsight(variance, pct float64, currency string) Insight {
	insight := Insight{
		Type:     InsightRecommendation,
		Priority: analytics.InsightPriority(variance, pct),
	}
	amount := analytics.FormatMoney(math.Abs(variance), currency)
	share := analytics.FormatPercent(math.Abs(pct))
	switch {
	case variance > 0:
		insight.Type = InsightWarning
		insight.Message = fmt.Sprintf("Budget is over by %s (%s%%)", amount, share)
	case variance < 0:
		insight.Message = fmt.Sprintf("Budget is under by %s (%s%%)", amount, share)
	default:
		insight.Message = "Budget is exactly on target"
	}
	return insight
}

// GetBudgetVsActualReport lists budgeted and actual spend with an efficiency ratio.
func (s *budgetReportService) GetBudgetVsActualReport(ctx context.Context, userID, budgetID string, start, end time.Time) (*BudgetVsActualReport, error) {
	a, err := s.prepare(ctx, userID, budgetID, start, end)
	if err != nil {
		return nil, err
	}
	snap := a.snapshot

	report := &BudgetVsActualReport{
		BudgetID:   snap.BudgetID,
		BudgetName: snap.BudgetName,
		Currency:   snap.Currency,
		Period:     snap.Period,
		Summary: BudgetVsActualSummary{
			TotalBudgeted:      snap.TotalAllocated,
			TotalActual:        snap.TotalSpent,
			Variance:           analytics.Round2(analytics.Variance(snap.TotalSpent, snap.TotalAllocated)),
			VariancePercentage: analytics.Round2(analytics.VariancePercentage(snap.TotalSpent, snap.TotalAllocated)),
			Status:             snap.Status,
		},
		CategoryComparison: make([]CategoryComparison, 0, len(snap.CategoryBreakdown)),
		GeneratedAt:        s.now(),
	}
	for _, c := range snap.CategoryBreakdown {
		eff := analytics.Efficiency(c.SpentAmount, c.AllocatedAmount)
		report.CategoryComparison = append(report.CategoryComparison, CategoryComparison{
			CategoryID:         c.CategoryID,
			CategoryName:       c.CategoryName,
			Budgeted:           c.AllocatedAmount,
			Actual:             c.SpentAmount,
			Variance:           analytics.Round2(analytics.Variance(c.SpentAmount, c.AllocatedAmount)),
			VariancePercentage: analytics.Round2(analytics.VariancePercentage(c.SpentAmount, c.AllocatedAmount)),
			Efficiency:         analytics.Round4(eff),
			EfficiencyStatus:   analytics.ClassifyEfficiency(eff),
			Status:             c.Status,
		})
	}
	return report, nil
}

// GetBudgetVarianceAnalysis classifies each category's variance by direction and impact.
func (s *budgetReportService) GetBudgetVarianceAnalysis(ctx context.Context, userID, budgetID string, start, end time.Time) (*VarianceAnalysis, error) {
	a, err := s.prepare(ctx, userID, budgetID, start, end)
	if err != nil {
		return nil, err
	}
	snap := a.snapshot

	report := &VarianceAnalysis{
		BudgetID:          snap.BudgetID,
		BudgetName:        snap.BudgetName,
		Currency:          snap.Currency,
		Period:            snap.Period,
		CategoryVariances: make([]VarianceRecord, 0, len(snap.CategoryBreakdown)),
		GeneratedAt:       s.now(),
	}

	favorable := decimal.Zero
	unfavorable := decimal.Zero
	for _, c := range snap.CategoryBreakdown {
		v := analytics.Round2(analytics.Variance(c.SpentAmount, c.AllocatedAmount))
		pct := analytics.Round2(analytics.VariancePercentage(c.SpentAmount, c.AllocatedAmount))
		kind := analytics.ClassifyVariance(v)
		if kind == analytics.Favorable {
			favorable = favorable.Add(decimal.NewFromFloat(v).Abs())
		} else {
			unfavorable = unfavorable.Add(decimal.NewFromFloat(v))
		}
		report.CategoryVariances = append(report.CategoryVariances, VarianceRecord{
			CategoryID:         c.CategoryID,
			CategoryName:       c.CategoryName,
			AllocatedAmount:    c.AllocatedAmount,
			SpentAmount:        c.SpentAmount,
			Variance:           v,
			VariancePercentage: pct,
			VarianceType:       kind,
			Impact:             analytics.ClassifyImpact(pct),
		})
	}

	total := analytics.Round2(analytics.Variance(snap.TotalSpent, snap.TotalAllocated))
	report.VarianceSummary = VarianceSummary{
		TotalVariance:           total,
		TotalVariancePercentage: analytics.Round2(analytics.VariancePercentage(snap.TotalSpent, snap.TotalAllocated)),
		FavorableVariances:      analytics.Round2(favorable.InexactFloat64()),
		UnfavorableVariances:    analytics.Round2(unfavorable.InexactFloat64()),
		NetVariance:             total,
	}
	return report, nil
}

// GetBudgetCategoryBreakdown reports transaction statistics and spending
// patterns per allocated category.
func (s *budgetReportService) GetBudgetCategoryBreakdown(ctx context.Context, userID, budgetID string, start, end time.Time) (*CategoryBreakdownReport, error) {
	a, err := s.prepare(ctx, userID, budgetID, start, end)
	if err != nil {
		return nil, err
	}
	snap := a.snapshot

	report := &CategoryBreakdownReport{
		BudgetID:   snap.BudgetID,
		BudgetName: snap.BudgetName,
		Currency:   snap.Currency,
		Period:     snap.Period,
		Totals: BreakdownTotals{
			TotalAllocated:   snap.TotalAllocated,
			TotalSpent:       snap.TotalSpent,
			UnallocatedSpent: snap.UnallocatedSpent,
			TransactionCount: snap.TransactionCount,
		},
		Categories:  make([]CategoryStatistics, 0, len(a.agg.Categories)),
		GeneratedAt: s.now(),
	}

	for i, c := range a.agg.Categories {
		entry := snap.CategoryBreakdown[i]
		report.Categories = append(report.Categories, CategoryStatistics{
			CategoryID:               c.CategoryID,
			CategoryName:             entry.CategoryName,
			CategoryPath:             entry.CategoryPath,
			AllocatedAmount:          entry.AllocatedAmount,
			SpentAmount:              entry.SpentAmount,
			PercentageOfTotal:        entry.PercentageOfTotal,
			TransactionCount:         c.TransactionCount,
			AverageTransactionAmount: analytics.Round2(c.AverageTransactionAmount),
			LargestTransaction:       analytics.Round2(c.LargestTransaction),
			SmallestTransaction:      analytics.Round2(c.SmallestTransaction),
			Status:                   entry.Status,
			Transactions:             entry.Transactions,
		})
	}

	report.SpendingPatterns = spendingPatterns(report.Categories)
	report.Insights = breakdownInsights(report, snap.Currency)
	return report, nil
}

func spendingPatterns(categories []CategoryStatistics) SpendingPatterns {
	patterns := SpendingPatterns{
		TopSpendingCategories: []CategoryRank{},
		MostActiveCategories:  []CategoryRank{},
		CategoryEfficiency:    make([]CategoryEfficiency, 0, len(categories)),
	}

	ranks := make([]CategoryRank, 0, len(categories))
	for _, c := range categories {
		if c.TransactionCount == 0 {
			continue
		}
		ranks = append(ranks, CategoryRank{
			CategoryID:       c.CategoryID,
			CategoryName:     c.CategoryName,
			SpentAmount:      c.SpentAmount,
			TransactionCount: c.TransactionCount,
		})
	}

	bySpend := append([]CategoryRank(nil), ranks...)
	sort.SliceStable(bySpend, func(i, j int) bool { return bySpend[i].SpentAmount > bySpend[j].SpentAmount })
	patterns.TopSpendingCategories = append(patterns.TopSpendingCategories, bySpend[:min(topCategoryCount, len(bySpend))]...)

	byCount := append([]CategoryRank(nil), ranks...)
	sort.SliceStable(byCount, func(i, j int) bool { return byCount[i].TransactionCount > byCount[j].TransactionCount })
	patterns.MostActiveCategories = append(patterns.MostActiveCategories, byCount[:min(topCategoryCount, len(byCount))]...)

	for _, c := range categories {
		if c.AllocatedAmount <= 0 {
			continue
		}
		eff := analytics.Efficiency(c.SpentAmount, c.AllocatedAmount)
		patterns.CategoryEfficiency = append(patterns.CategoryEfficiency, CategoryEfficiency{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Efficiency:   analytics.Round4(eff),
			Status:       analytics.ClassifyEfficiency(eff),
		})
	}
	return patterns
}

func breakdownInsights(report *CategoryBreakdownReport, currency string) []Insight {
	insights := []Insight{}

	if top := report.SpendingPatterns.TopSpendingCategories; len(top) > 0 && report.Totals.TotalSpent > 0 {
		share := shareOf(top[0].SpentAmount, report.Totals.TotalSpent)
		priority := analytics.LevelLow
		if share >= dominantCategoryShare {
			priority = analytics.LevelMedium
		}
		insights = append(insights, Insight{
			Type:       InsightRecommendation,
			Priority:   priority,
			Message:    fmt.Sprintf("%s accounts for %s%% of total spending", top[0].CategoryName, analytics.FormatPercent(share)),
			CategoryID: top[0].CategoryID,
		})
	}

	byID := make(map[string]CategoryStatistics, len(report.Categories))
	for _, c := range report.Categories {
		byID[c.CategoryID] = c
	}
	for _, e := range report.SpendingPatterns.CategoryEfficiency {
		if e.Status != analytics.Inefficient {
			continue
		}
		priority := analytics.LevelMedium
		if byID[e.CategoryID].Status == analytics.StatusOver {
			priority = analytics.LevelHigh
		}
		insights = append(insights, Insight{
			Type:     InsightWarning,
			Priority: priority,
			Message: fmt.Sprintf("%s has used %s%% of its allocation", e.CategoryName,
				analytics.FormatPercent(e.Efficiency*100)),
			CategoryID: e.CategoryID,
		})
	}

	for _, c := range report.Categories {
		if c.TransactionCount > 0 || c.AllocatedAmount <= 0 {
			continue
		}
		insights = append(insights, Insight{
			Type:     InsightRecommendation,
			Priority: analytics.LevelLow,
			Message: fmt.Sprintf("No spending recorded in %s; consider reallocating its %s",
				c.CategoryName, analytics.FormatMoney(c.AllocatedAmount, currency)),
			CategoryID: c.CategoryID,
		})
	}

	if report.Totals.UnallocatedSpent > 0 {
		insights = append(insights, Insight{
			Type:     InsightWarning,
			Priority: analytics.LevelMedium,
			Message: fmt.Sprintf("%s was spent in categories without an allocation",
				analytics.FormatMoney(report.Totals.UnallocatedSpent, currency)),
		})
	}
	return insights
}
