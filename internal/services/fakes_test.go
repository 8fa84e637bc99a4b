package services

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/models"
	"budgetlens/internal/pagination"
)

var fixedNow = time.Date(2025, time.April, 1, 9, 30, 0, 0, time.UTC)

func testConfig() AnalyticsConfig {
	cfg := DefaultAnalyticsConfig()
	cfg.Now = func() time.Time { return fixedNow }
	return cfg
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

// fakeBudgetStore serves budgets from memory and counts calls.
type fakeBudgetStore struct {
	mu        sync.Mutex
	budgets   []*models.Budget
	getErr    map[string]error
	listErr   error
	getCalls  int
	listCalls int
}

func (f *fakeBudgetStore) add(b *models.Budget) *models.Budget {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.budgets = append(f.budgets, b)
	return b
}

func (f *fakeBudgetStore) GetBudgetByID(_ context.Context, userID, budgetID string) (*models.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if err, ok := f.getErr[budgetID]; ok {
		return nil, err
	}
	for _, b := range f.budgets {
		if b.ID != budgetID {
			continue
		}
		if b.UserID != userID {
			return nil, apperrors.ErrBudgetAccessDenied
		}
		cp := *b
		return &cp, nil
	}
	return nil, apperrors.ErrBudgetNotFound
}

func (f *fakeBudgetStore) ListBudgets(_ context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	page.Defaults()
	var owned []models.Budget
	for _, b := range f.budgets {
		if b.UserID == userID {
			owned = append(owned, *b)
		}
	}
	from := min(page.Offset(), len(owned))
	to := min(from+page.PageSize, len(owned))
	resp := pagination.NewPageResponse(owned[from:to], page.Page, page.PageSize, int64(len(owned)))
	return &resp, nil
}

func (f *fakeBudgetStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

// fakeTransactionQuery filters an in-memory transaction list.
type fakeTransactionQuery struct {
	mu  sync.Mutex
	txs []models.Transaction
	// failFor fails any query that includes one of these category ids.
	failFor map[string]error
	// panicFor panics on any query that includes one of these category ids.
	panicFor map[string]any
	err      error
	// ignoreCategoryFilter returns transactions outside the requested categories.
	ignoreCategoryFilter bool
	filters              []TransactionFilter
}

func (f *fakeTransactionQuery) add(userID, categoryID string, amount float64, when time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx := models.Transaction{UserID: userID, Type: models.TransactionTypeExpense, Amount: amount, Date: when}
	tx.ID = "tx-" + strconv.Itoa(len(f.txs))
	if categoryID != "" {
		tx.CategoryID = strPtr(categoryID)
	}
	f.txs = append(f.txs, tx)
}

func (f *fakeTransactionQuery) FindTransactions(_ context.Context, userID string, filter TransactionFilter) (*TransactionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	for _, id := range filter.CategoryIDs {
		if err, ok := f.failFor[id]; ok {
			return nil, err
		}
		if v, ok := f.panicFor[id]; ok {
			panic(v)
		}
	}

	allowed := make(map[string]bool, len(filter.CategoryIDs))
	for _, id := range filter.CategoryIDs {
		allowed[id] = true
	}
	var out []models.Transaction
	for _, tx := range f.txs {
		if tx.UserID != userID {
			continue
		}
		if !filter.StartDate.IsZero() && tx.Date.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && tx.Date.After(filter.EndDate) {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if !f.ignoreCategoryFilter && filter.CategoryIDs != nil && !allowed[tx.CategoryKey()] {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	total := int64(len(out))
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return &TransactionPage{Transactions: out, Total: total}, nil
}

func (f *fakeTransactionQuery) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filters)
}

// fakeCategoryLookup resolves names from a map.
type fakeCategoryLookup struct {
	mu    sync.Mutex
	names map[string]CategoryInfo
	err   error
	count int
}

func (f *fakeCategoryLookup) GetCategoryByID(_ context.Context, categoryID string) (*CategoryInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	if f.err != nil {
		return nil, f.err
	}
	info, ok := f.names[categoryID]
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &info, nil
}

// fakeRenderer records what it was asked to render.
type fakeRenderer struct {
	payload *ExportPayload
	format  ExportFormat
	out     []byte
	err     error
}

func (f *fakeRenderer) Render(_ context.Context, payload *ExportPayload, format ExportFormat) ([]byte, error) {
	f.payload = payload
	f.format = format
	return f.out, f.err
}

const (
	testUser  = "user-1"
	otherUser = "user-2"
)

// fixture is the budget used by most service tests: $4000 over March 2025,
// $2000 each to food and rent.
type fixture struct {
	budgets    *fakeBudgetStore
	txs        *fakeTransactionQuery
	categories *fakeCategoryLookup
	budget     *models.Budget
}

func newFixture() *fixture {
	f := &fixture{
		budgets: &fakeBudgetStore{},
		txs:     &fakeTransactionQuery{},
		categories: &fakeCategoryLookup{names: map[string]CategoryInfo{
			"food": {ID: "food", Name: "Food", Path: "Living > Food"},
			"rent": {ID: "rent", Name: "Rent", Path: "Rent"},
		}},
	}
	f.budget = f.budgets.add(newBudget("b1", testUser, 4000,
		models.CategoryAllocation{CategoryID: "food", AllocatedAmount: 2000},
		models.CategoryAllocation{CategoryID: "rent", AllocatedAmount: 2000},
	))
	return f
}

func newBudget(id, userID string, total float64, allocations ...models.CategoryAllocation) *models.Budget {
	b := &models.Budget{
		UserID:      userID,
		Name:        "Household " + id,
		TotalAmount: total,
		Currency:    "USD",
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 31),
		IsActive:    true,
		Allocations: allocations,
	}
	b.ID = id
	return b
}

func (f *fixture) providers() Providers {
	return Providers{Budgets: f.budgets, Transactions: f.txs, Categories: f.categories}
}

func (f *fixture) reports() BudgetReportServicer {
	return NewBudgetReportService(f.providers(), testConfig())
}
