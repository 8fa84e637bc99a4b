package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/models"
)

// categoryLookup resolves category names from the database.
type categoryLookup struct {
	db *gorm.DB
}

// NewCategoryLookup creates a gorm-backed CategoryLookup.
func NewCategoryLookup(db *gorm.DB) CategoryLookup {
	return &categoryLookup{db: db}
}

// GetCategoryByID returns the name and "Parent > Child" path of a category.
// Soft-deleted categories still resolve so historical spend keeps its name.
func (l *categoryLookup) GetCategoryByID(ctx context.Context, categoryID string) (*CategoryInfo, error) {
	var category models.Category
	err := l.db.WithContext(ctx).Unscoped().
		Preload("Parent", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ?", categoryID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Upstream(err)
	}

	return &CategoryInfo{ID: category.ID, Name: category.Name, Path: category.Path()}, nil
}
