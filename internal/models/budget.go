package models

import "time"

// DefaultAlertThreshold is the utilization percentage at which a budget raises
// an alert when it has no threshold of its own.
const DefaultAlertThreshold = 80.0

// Budget allocates a total amount across categories over a date window.
// Allocations are expected to sum to at most TotalAmount; that is enforced
// when the budget is written, not when it is analysed.
type Budget struct {
	Base
	UserID         string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string    `gorm:"not null" json:"name"`
	TotalAmount    float64   `gorm:"type:numeric(15,2);not null" json:"total_amount"`
	Currency       string    `gorm:"size:3;not null;default:USD" json:"currency"`
	StartDate      time.Time `gorm:"not null" json:"start_date"`
	EndDate        time.Time `gorm:"not null" json:"end_date"`
	AlertThreshold float64   `gorm:"type:numeric(5,2)" json:"alert_threshold,omitempty"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	Allocations []CategoryAllocation `gorm:"foreignKey:BudgetID" json:"categories"`
}

// CategoryAllocation is the portion of a budget assigned to one category.
type CategoryAllocation struct {
	Base
	BudgetID        string  `gorm:"type:uuid;not null;index" json:"budget_id"`
	CategoryID      string  `gorm:"type:uuid;not null" json:"category_id"`
	AllocatedAmount float64 `gorm:"type:numeric(15,2);not null" json:"allocated_amount"`
	IsFlexible      bool    `gorm:"default:false" json:"is_flexible"`
	Priority        int     `gorm:"default:0" json:"priority"`
}

// TableName keeps the allocation table named after the join it models.
func (CategoryAllocation) TableName() string { return "budget_categories" }

// CategoryIDs returns the allocated category ids in allocation order.
func (b *Budget) CategoryIDs() []string {
	ids := make([]string, 0, len(b.Allocations))
	for _, a := range b.Allocations {
		ids = append(ids, a.CategoryID)
	}
	return ids
}

// Threshold returns the budget's alert threshold, or fallback when unset.
func (b *Budget) Threshold(fallback float64) float64 {
	if b.AlertThreshold > 0 {
		return b.AlertThreshold
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultAlertThreshold
}
