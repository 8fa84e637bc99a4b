package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"budgetlens/internal/analytics"
	"budgetlens/internal/logger"
	"budgetlens/internal/models"
	"budgetlens/internal/pagination"
)

// alertListPageSize is the page size used when walking a user's budgets.
const alertListPageSize = 100

// budgetAlertService evaluates alert rules over budget snapshots.
type budgetAlertService struct {
	core *budgetAnalyticsService
}

// NewBudgetAlertService creates a new BudgetAlertServicer.
func NewBudgetAlertService(providers Providers, cfg AnalyticsConfig) BudgetAlertServicer {
	return &budgetAlertService{core: newAnalyzer(providers, cfg)}
}

// CheckBudgetAlerts evaluates one budget, or every budget of the user when
// budgetID is nil. A budget whose evaluation fails contributes no alerts;
// the failure is logged and the remaining budgets are still evaluated.
// Only a failure to load the budgets themselves is returned.
func (s *budgetAlertService) CheckBudgetAlerts(ctx context.Context, userID string, budgetID *string) ([]Alert, error) {
	var budgets []models.Budget
	if budgetID != nil {
		budget, err := s.core.loadBudget(ctx, userID, *budgetID)
		if err != nil {
			return nil, err
		}
		budgets = []models.Budget{*budget}
	} else {
		all, err := s.listAll(ctx, userID)
		if err != nil {
			return nil, err
		}
		budgets = all
	}

	results := make([][]Alert, len(budgets))
	var g errgroup.Group
	g.SetLimit(s.core.cfg.AlertConcurrency)
	for i := range budgets {
		i := i
		budget := &budgets[i]
		g.Go(func() error {
			results[i] = s.evaluate(ctx, userID, budget)
			return nil
		})
	}
	_ = g.Wait()

	alerts := []Alert{}
	for _, r := range results {
		alerts = append(alerts, r...)
	}
	return alerts, nil
}

// evaluate returns the alerts of one budget over its own window. It never
// fails: errors and panics are logged and yield no alerts.
func (s *budgetAlertService) evaluate(ctx context.Context, userID string, budget *models.Budget) (alerts []Alert) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warnw("budget alert evaluation panicked",
				"user_id", userID,
				"budget_id", budget.ID,
				"error", r,
			)
			alerts = []Alert{}
		}
	}()

	start, end, err := resolveWindow(budget, budget.StartDate, budget.EndDate)
	if err == nil {
		var a *analysis
		a, err = s.core.analyze(ctx, userID, budget, start, end)
		if err == nil {
			return a.snapshot.Alerts
		}
	}
	logger.Get().Warnw("budget alert evaluation failed",
		"user_id", userID,
		"budget_id", budget.ID,
		"error", err,
	)
	return []Alert{}
}

func (s *budgetAlertService) listAll(ctx context.Context, userID string) ([]models.Budget, error) {
	return pagination.Collect(ctx, alertListPageSize,
		func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
			return s.core.providers.Budgets.ListBudgets(ctx, userID, page)
		})
}

// EvaluateAlerts applies the alert rules to a snapshot. Budget utilization at
// or above threshold raises a medium alert, escalated to critical when the
// allocation is also fully used. Every over-budget category raises a high
// alert regardless of threshold.
func EvaluateAlerts(snap *BudgetAnalytics, threshold float64) []Alert {
	alerts := []Alert{}
	if snap.TotalAllocated > 0 && snap.UtilizationPercentage >= threshold {
		used := analytics.FormatPercent(snap.UtilizationPercentage)
		if snap.Status != analytics.StatusUnder {
			alerts = append(alerts, Alert{
				Type:     AlertBudgetExceeded,
				Severity: SeverityCritical,
				Message: fmt.Sprintf("Budget %q has used %s%% of its allocation (%s of %s)",
					snap.BudgetName, used,
					analytics.FormatMoney(snap.TotalSpent, snap.Currency),
					analytics.FormatMoney(snap.TotalAllocated, snap.Currency)),
				CurrentAmount:         snap.TotalSpent,
				LimitAmount:           snap.TotalAllocated,
				UtilizationPercentage: snap.UtilizationPercentage,
				BudgetID:              snap.BudgetID,
				BudgetName:            snap.BudgetName,
			})
		} else {
			alerts = append(alerts, Alert{
				Type:     AlertBudgetThreshold,
				Severity: SeverityMedium,
				Message: fmt.Sprintf("Budget %q has reached %s%% of its allocation, above the %s%% alert threshold",
					snap.BudgetName, used, analytics.FormatPercent(threshold)),
				CurrentAmount:         snap.TotalSpent,
				LimitAmount:           snap.TotalAllocated,
				UtilizationPercentage: snap.UtilizationPercentage,
				BudgetID:              snap.BudgetID,
				BudgetName:            snap.BudgetName,
			})
		}
	}

	for _, c := range snap.CategoryBreakdown {
		if c.Status != analytics.StatusOver {
			continue
		}
		alerts = append(alerts, Alert{
			Type:     AlertCategoryExceeded,
			Severity: SeverityHigh,
			Message: fmt.Sprintf("Category %q is over its allocation by %s",
				c.CategoryName, analytics.FormatMoney(analytics.Sum(c.SpentAmount, -c.AllocatedAmount), snap.Currency)),
			CurrentAmount:         c.SpentAmount,
			LimitAmount:           c.AllocatedAmount,
			UtilizationPercentage: c.UtilizationPercentage,
			BudgetID:              snap.BudgetID,
			BudgetName:            snap.BudgetName,
			CategoryID:            c.CategoryID,
		})
	}
	return alerts
}
