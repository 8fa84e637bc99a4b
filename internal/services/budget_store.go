package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/models"
	"budgetlens/internal/pagination"
)

// budgetStore reads budgets and their allocations from the database.
type budgetStore struct {
	db *gorm.DB
}

// NewBudgetStore creates a gorm-backed BudgetStore.
func NewBudgetStore(db *gorm.DB) BudgetStore {
	return &budgetStore{db: db}
}

func preloadAllocations(db *gorm.DB) *gorm.DB {
	return db.Order("priority DESC").Order("created_at ASC").Order("id ASC")
}

// GetBudgetByID returns a budget by ID. A budget owned by another user is
// reported as ErrBudgetAccessDenied rather than hidden.
func (s *budgetStore) GetBudgetByID(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.WithContext(ctx).
		Preload("Allocations", preloadAllocations).
		Where("id = ?", budgetID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Upstream(err)
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrBudgetAccessDenied
	}
	return &budget, nil
}

// ListBudgets returns a paginated list of the user's budgets, oldest first.
func (s *budgetStore) ListBudgets(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	var budgets []models.Budget
	err := base.Preload("Allocations", preloadAllocations).
		Order("created_at ASC").Order("id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Upstream(err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}
