package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction is a recorded money movement. Amount is always a positive
// magnitude; Type says which direction it went.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      float64         `gorm:"type:numeric(15,2);not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}

// IsOutflow reports whether the transaction counts as spend.
// An empty type is treated as an expense.
func (t *Transaction) IsOutflow() bool {
	return t.Type == "" || t.Type == TransactionTypeExpense
}

// CategoryKey returns the category id or "" for uncategorized transactions.
func (t *Transaction) CategoryKey() string {
	if t.CategoryID == nil {
		return ""
	}
	return *t.CategoryID
}
