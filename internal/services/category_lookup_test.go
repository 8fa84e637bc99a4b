package services

import (
	"context"
	"strings"
	"testing"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/testutil"
)

func TestCategoryLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("top_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		lookup := NewCategoryLookup(db)
		cat := testutil.CreateTestCategoryNamed(t, db, testutil.NewUserID(), "Rent", nil)

		info, err := lookup.GetCategoryByID(ctx, cat.ID)
		testutil.AssertNoError(t, err)

		if info.Name != "Rent" || info.Path != "Rent" {
			t.Errorf("expected Rent/Rent, got %s/%s", info.Name, info.Path)
		}
	})

	t.Run("child_path", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		lookup := NewCategoryLookup(db)
		userID := testutil.NewUserID()
		parent := testutil.CreateTestCategoryNamed(t, db, userID, "Living", nil)
		child := testutil.CreateTestCategoryNamed(t, db, userID, "Groceries", &parent.ID)

		info, err := lookup.GetCategoryByID(ctx, child.ID)
		testutil.AssertNoError(t, err)

		if info.Path != "Living > Groceries" {
			t.Errorf("expected path 'Living > Groceries', got %q", info.Path)
		}
		if info.ID != child.ID {
			t.Errorf("expected id %s, got %s", child.ID, info.ID)
		}
	})

	t.Run("soft_deleted_still_resolves", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		lookup := NewCategoryLookup(db)
		cat := testutil.CreateTestCategoryNamed(t, db, testutil.NewUserID(), "Old", nil)
		if err := db.Delete(cat).Error; err != nil {
			t.Fatalf("failed to delete category: %v", err)
		}

		info, err := lookup.GetCategoryByID(ctx, cat.ID)
		testutil.AssertNoError(t, err)

		if info.Name != "Old" {
			t.Errorf("expected name Old, got %s", info.Name)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		lookup := NewCategoryLookup(db)

		_, err := lookup.GetCategoryByID(ctx, testutil.NewUserID())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("closed_database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		lookup := NewCategoryLookup(db)
		testutil.TeardownTestDB(t, db)

		_, err := lookup.GetCategoryByID(ctx, testutil.NewUserID())
		testutil.AssertErrorKind(t, err, apperrors.KindUpstream)
		if !strings.Contains(err.Error(), "database is closed") {
			t.Errorf("expected the driver message, got %q", err.Error())
		}
	})
}
