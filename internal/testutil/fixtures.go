package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetlens/internal/models"
	"budgetlens/internal/uuid"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a fresh user id. Users live in the identity service, so
// there is no user row to create.
func NewUserID() string {
	return uuid.New()
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestCategory creates an expense category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, parentID *string) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, userID, fmt.Sprintf("Category %d", nextID()), parentID)
}

// CreateTestCategoryNamed creates an expense category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, userID, name string, parentID *string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:   userID,
		Name:     name,
		Type:     models.CategoryTypeExpense,
		ParentID: parentID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// Allocation is shorthand for a category allocation fixture.
func Allocation(categoryID string, amount float64) models.CategoryAllocation {
	return models.CategoryAllocation{CategoryID: categoryID, AllocatedAmount: amount}
}

// CreateTestBudget creates a USD budget over [start, end] with the given allocations.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID string, total float64, start, end time.Time, allocations ...models.CategoryAllocation) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		Name:        fmt.Sprintf("Budget %d", nextID()),
		TotalAmount: total,
		Currency:    "USD",
		StartDate:   start,
		EndDate:     end,
		IsActive:    true,
		Allocations: allocations,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestTransaction creates an expense transaction.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, categoryID *string, amount float64, date time.Time) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOfType(t, db, userID, categoryID, models.TransactionTypeExpense, amount, date)
}

// CreateTestTransactionOfType creates a transaction of the given type.
func CreateTestTransactionOfType(t *testing.T, db *gorm.DB, userID string, categoryID *string, txType models.TransactionType, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        txType,
		Amount:      amount,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
