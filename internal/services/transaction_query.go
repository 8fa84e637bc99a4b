package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/models"
)

// transactionQuery reads transactions from the database.
type transactionQuery struct {
	db *gorm.DB
}

// NewTransactionQuery creates a gorm-backed TransactionQuery.
func NewTransactionQuery(db *gorm.DB) TransactionQuery {
	return &transactionQuery{db: db}
}

// FindTransactions returns the user's transactions matching filter, oldest
// first. Total counts every match even when Limit truncates the page.
func (q *transactionQuery) FindTransactions(ctx context.Context, userID string, filter TransactionFilter) (*TransactionPage, error) {
	base := q.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	find := base.Order("date ASC").Order("id ASC")
	if filter.Limit > 0 {
		find = find.Limit(filter.Limit)
	}
	var txs []models.Transaction
	if err := find.Find(&txs).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return &TransactionPage{Transactions: txs, Total: total}, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if !f.StartDate.IsZero() {
		q = q.Where("date >= ?", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		q = q.Where("date <= ?", f.EndDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryIDs != nil {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}
	return q
}
