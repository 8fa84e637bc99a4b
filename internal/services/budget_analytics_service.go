package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"budgetlens/internal/analytics"
	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/logger"
	"budgetlens/internal/models"
)

// unknownCategoryName labels allocations whose category no longer resolves.
const unknownCategoryName = "Unknown category"

// budgetAnalyticsService assembles budget snapshots from the data providers.
type budgetAnalyticsService struct {
	providers Providers
	cfg       AnalyticsConfig
}

// NewBudgetAnalyticsService creates a new BudgetAnalyticsServicer.
func NewBudgetAnalyticsService(providers Providers, cfg AnalyticsConfig) BudgetAnalyticsServicer {
	return newAnalyzer(providers, cfg)
}

func newAnalyzer(providers Providers, cfg AnalyticsConfig) *budgetAnalyticsService {
	return &budgetAnalyticsService{providers: providers, cfg: cfg.withDefaults()}
}

// analysis is a snapshot plus the raw data it was built from, for report
// builders that need more than the snapshot exposes.
type analysis struct {
	budget       *models.Budget
	start        time.Time
	end          time.Time
	transactions []models.Transaction
	agg          analytics.Aggregation
	categories   map[string]CategoryInfo
	snapshot     *BudgetAnalytics
}

// categoryName returns the display name of an allocated category.
func (a *analysis) categoryName(categoryID string) string {
	if info, ok := a.categories[categoryID]; ok {
		return info.Name
	}
	return unknownCategoryName
}

// GetBudgetAnalytics returns the snapshot of a budget over [start, end].
func (s *budgetAnalyticsService) GetBudgetAnalytics(ctx context.Context, userID, budgetID string, start, end time.Time) (*BudgetAnalytics, error) {
	budget, err := s.loadBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	start, end, err = resolveWindow(budget, start, end)
	if err != nil {
		return nil, err
	}
	a, err := s.analyze(ctx, userID, budget, start, end)
	if err != nil {
		return nil, err
	}
	return a.snapshot, nil
}

// loadBudget fetches a budget, reporting any not-found condition as
// ErrBudgetNotFound and passing every other failure through.
func (s *budgetAnalyticsService) loadBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	budget, err := s.providers.Budgets.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Upstream(err)
	}
	if budget == nil {
		return nil, apperrors.ErrBudgetNotFound
	}
	if budget.UserID != "" && budget.UserID != userID {
		return nil, apperrors.ErrBudgetAccessDenied
	}
	return budget, nil
}

// resolveWindow defaults zero dates to the budget's own window. An end date
// at midnight covers that whole day.
func resolveWindow(budget *models.Budget, start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		start = budget.StartDate
	}
	if end.IsZero() {
		end = budget.EndDate
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}
	y, m, d := end.Date()
	if end.Equal(time.Date(y, m, d, 0, 0, 0, 0, end.Location())) {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, nil
}

// analyze fetches the budget's transactions and category names concurrently
// and builds the snapshot for [start, end].
func (s *budgetAnalyticsService) analyze(ctx context.Context, userID string, budget *models.Budget, start, end time.Time) (*analysis, error) {
	categoryIDs := uniqueStrings(budget.CategoryIDs())
	infos := make([]CategoryInfo, len(categoryIDs))
	var page *TransactionPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(recoverProvider(func() error {
		expense := models.TransactionTypeExpense
		p, err := s.providers.Transactions.FindTransactions(gctx, userID, TransactionFilter{
			StartDate:   start,
			EndDate:     end,
			CategoryIDs: categoryIDs,
			Type:        &expense,
			Limit:       s.cfg.TransactionQueryLimit,
		})
		if err != nil {
			return apperrors.Upstream(err)
		}
		page = p
		return nil
	}))
	for i, id := range categoryIDs {
		i, id := i, id
		g.Go(recoverProvider(func() error {
			info, err := s.lookupCategory(gctx, id)
			if err != nil {
				return err
			}
			infos[i] = *info
			return nil
		}))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var txs []models.Transaction
	if page != nil {
		txs = page.Transactions
		if page.Total > int64(len(txs)) {
			logger.Get().Warnw("transaction query truncated",
				"user_id", userID,
				"budget_id", budget.ID,
				"returned", len(txs),
				"total", page.Total,
			)
		}
	}

	a := &analysis{
		budget:       budget,
		start:        start,
		end:          end,
		transactions: txs,
		agg:          analytics.AggregateByCategory(txs, budget.Allocations),
		categories:   make(map[string]CategoryInfo, len(infos)),
	}
	for _, info := range infos {
		a.categories[info.ID] = info
	}
	a.snapshot = s.buildSnapshot(a)
	return a, nil
}

// recoverProvider turns a panic in a provider call into an upstream error.
// errgroup goroutines do not hand panics back to Wait.
func recoverProvider(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = apperrors.Upstream(fmt.Errorf("provider panic: %v", r))
			}
		}()
		return fn()
	}
}

// lookupCategory resolves a category, falling back to a placeholder name when
// the category is gone.
func (s *budgetAnalyticsService) lookupCategory(ctx context.Context, categoryID string) (*CategoryInfo, error) {
	info, err := s.providers.Categories.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return &CategoryInfo{ID: categoryID, Name: unknownCategoryName}, nil
		}
		return nil, apperrors.Upstream(err)
	}
	if info == nil {
		return &CategoryInfo{ID: categoryID, Name: unknownCategoryName}, nil
	}
	resolved := *info
	resolved.ID = categoryID
	if resolved.Path == "" {
		resolved.Path = resolved.Name
	}
	return &resolved, nil
}

func (s *budgetAnalyticsService) buildSnapshot(a *analysis) *BudgetAnalytics {
	budget := a.budget
	spent := a.agg.TotalSpent

	snap := &BudgetAnalytics{
		BudgetID:              budget.ID,
		BudgetName:            budget.Name,
		Currency:              budget.Currency,
		Period:                ReportPeriod{StartDate: a.start, EndDate: a.end},
		TotalAllocated:        analytics.Round2(budget.TotalAmount),
		TotalSpent:            analytics.Round2(spent),
		RemainingAmount:       analytics.Round2(analytics.Sum(budget.TotalAmount, -spent)),
		UtilizationPercentage: analytics.Round2(analytics.Utilization(spent, budget.TotalAmount)),
		UnallocatedSpent:      analytics.Round2(a.agg.UnallocatedSpent),
		TransactionCount:      a.agg.TransactionCount,
		Status:                analytics.StatusOf(spent, budget.TotalAmount),
		CategoryBreakdown:     make([]CategoryBreakdown, 0, len(a.agg.Categories)),
	}

	for _, c := range a.agg.Categories {
		alloc := allocationFor(budget, c.CategoryID)
		info := a.categories[c.CategoryID]
		entry := CategoryBreakdown{
			CategoryID:            c.CategoryID,
			CategoryName:          a.categoryName(c.CategoryID),
			CategoryPath:          info.Path,
			AllocatedAmount:       analytics.Round2(c.AllocatedAmount),
			SpentAmount:           analytics.Round2(c.SpentAmount),
			RemainingAmount:       analytics.Round2(analytics.Sum(c.AllocatedAmount, -c.SpentAmount)),
			UtilizationPercentage: analytics.Round2(analytics.Utilization(c.SpentAmount, c.AllocatedAmount)),
			PercentageOfTotal:     analytics.Round2(shareOf(c.SpentAmount, spent)),
			Status:                analytics.StatusOf(c.SpentAmount, c.AllocatedAmount),
			IsFlexible:            alloc.IsFlexible,
			Priority:              alloc.Priority,
			Transactions:          summarize(c.Transactions),
		}
		snap.CategoryBreakdown = append(snap.CategoryBreakdown, entry)
	}

	snap.DailyProgress = dailyProgress(a.transactions, budget.TotalAmount, a.start, a.end)
	snap.Alerts = EvaluateAlerts(snap, budget.Threshold(s.cfg.DefaultAlertThreshold))
	return snap
}

// dailyProgress lists each day with spend, its running total and the
// cumulative amount a linear pace through the window would have spent.
func dailyProgress(txs []models.Transaction, allocated float64, start, end time.Time) []DailyProgress {
	days := analytics.DailyTotals(txs)
	windowDays := analytics.DaysInclusive(start, end)
	out := make([]DailyProgress, 0, len(days))
	cumulative := decimal.Zero
	for _, d := range days {
		cumulative = cumulative.Add(decimal.NewFromFloat(d.Spent))
		elapsed := analytics.DaysInclusive(start, d.Start)
		if elapsed > windowDays {
			elapsed = windowDays
		}
		expected := allocated * float64(elapsed) / float64(windowDays)
		out = append(out, DailyProgress{
			Date:               d.Period,
			Spent:              analytics.Round2(d.Spent),
			CumulativeSpent:    analytics.Round2(cumulative.InexactFloat64()),
			ExpectedCumulative: analytics.Round2(expected),
			TransactionCount:   d.Count,
		})
	}
	return out
}

func allocationFor(budget *models.Budget, categoryID string) models.CategoryAllocation {
	for _, a := range budget.Allocations {
		if a.CategoryID == categoryID {
			return a
		}
	}
	return models.CategoryAllocation{}
}

func summarize(txs []models.Transaction) []TransactionSummary {
	out := make([]TransactionSummary, 0, len(txs))
	for _, tx := range txs {
		out = append(out, TransactionSummary{
			ID:          tx.ID,
			Amount:      tx.Amount,
			Date:        tx.Date,
			Description: tx.Description,
		})
	}
	return out
}

// shareOf returns part as a percentage of whole, 0 when whole is 0.
func shareOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
