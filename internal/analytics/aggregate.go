package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"budgetlens/internal/models"
)

// DayLayout and MonthLayout are the bucket keys used in reports.
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// CategoryStats summarises the outflows of one allocated category.
type CategoryStats struct {
	CategoryID               string
	AllocatedAmount          float64
	SpentAmount              float64
	TransactionCount         int
	AverageTransactionAmount float64
	LargestTransaction       float64
	SmallestTransaction      float64
	Transactions             []models.Transaction
}

// Aggregation is the result of grouping a transaction set by allocation.
type Aggregation struct {
	// Categories follows the order of the allocations it was built from.
	Categories []CategoryStats
	// TotalSpent covers every outflow, allocated or not.
	TotalSpent float64
	// AllocatedSpent covers outflows in allocated categories only.
	AllocatedSpent float64
	// UnallocatedSpent is TotalSpent - AllocatedSpent.
	UnallocatedSpent float64
	TransactionCount int
}

// ByID returns the stats for categoryID.
func (a *Aggregation) ByID(categoryID string) (CategoryStats, bool) {
	for _, c := range a.Categories {
		if c.CategoryID == categoryID {
			return c, true
		}
	}
	return CategoryStats{}, false
}

type accumulator struct {
	total    decimal.Decimal
	count    int
	largest  float64
	smallest float64
	txs      []models.Transaction
}

// AggregateByCategory groups outflows by exact category id. Every allocation
// gets an entry even without spend. Transactions whose category has no
// allocation only count toward TotalSpent.
func AggregateByCategory(txs []models.Transaction, allocations []models.CategoryAllocation) Aggregation {
	accs := make(map[string]*accumulator, len(allocations))
	for _, a := range allocations {
		if _, ok := accs[a.CategoryID]; !ok {
			accs[a.CategoryID] = &accumulator{total: decimal.Zero}
		}
	}

	total := decimal.Zero
	allocated := decimal.Zero
	count := 0
	for _, tx := range txs {
		if !tx.IsOutflow() {
			continue
		}
		amount := decimal.NewFromFloat(tx.Amount)
		total = total.Add(amount)
		count++

		acc, ok := accs[tx.CategoryKey()]
		if !ok {
			continue
		}
		allocated = allocated.Add(amount)
		if acc.count == 0 || tx.Amount > acc.largest {
			acc.largest = tx.Amount
		}
		if acc.count == 0 || tx.Amount < acc.smallest {
			acc.smallest = tx.Amount
		}
		acc.total = acc.total.Add(amount)
		acc.count++
		acc.txs = append(acc.txs, tx)
	}

	out := Aggregation{
		Categories:       make([]CategoryStats, 0, len(allocations)),
		TotalSpent:       total.InexactFloat64(),
		AllocatedSpent:   allocated.InexactFloat64(),
		UnallocatedSpent: total.Sub(allocated).InexactFloat64(),
		TransactionCount: count,
	}
	seen := make(map[string]bool, len(allocations))
	for _, a := range allocations {
		if seen[a.CategoryID] {
			continue
		}
		seen[a.CategoryID] = true
		acc := accs[a.CategoryID]
		stats := CategoryStats{
			CategoryID:          a.CategoryID,
			AllocatedAmount:     allocationTotal(allocations, a.CategoryID),
			SpentAmount:         acc.total.InexactFloat64(),
			TransactionCount:    acc.count,
			LargestTransaction:  acc.largest,
			SmallestTransaction: acc.smallest,
			Transactions:        sortedByDate(acc.txs),
		}
		if acc.count > 0 {
			stats.AverageTransactionAmount = acc.total.Div(decimal.NewFromInt(int64(acc.count))).InexactFloat64()
		}
		out.Categories = append(out.Categories, stats)
	}
	return out
}

// allocationTotal sums duplicate allocations for the same category.
func allocationTotal(allocations []models.CategoryAllocation, categoryID string) float64 {
	total := decimal.Zero
	for _, a := range allocations {
		if a.CategoryID == categoryID {
			total = total.Add(decimal.NewFromFloat(a.AllocatedAmount))
		}
	}
	return total.InexactFloat64()
}

func sortedByDate(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// PeriodTotal is the outflow total of one time bucket.
type PeriodTotal struct {
	Period string
	Start  time.Time
	Spent  float64
	Count  int
}

// DailyTotals buckets outflows by UTC calendar day. Only days with spend are
// returned, oldest first.
func DailyTotals(txs []models.Transaction) []PeriodTotal {
	byDay := make(map[string]*PeriodTotal)
	sums := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsOutflow() {
			continue
		}
		d := tx.Date.UTC()
		key := d.Format(DayLayout)
		pt, ok := byDay[key]
		if !ok {
			pt = &PeriodTotal{Period: key, Start: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)}
			byDay[key] = pt
			sums[key] = decimal.Zero
		}
		sums[key] = sums[key].Add(decimal.NewFromFloat(tx.Amount))
		pt.Count++
	}

	out := make([]PeriodTotal, 0, len(byDay))
	for key, pt := range byDay {
		pt.Spent = sums[key].InexactFloat64()
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// MonthlyTotals buckets outflows by UTC calendar month across [start, end],
// including months without spend so the series has no gaps.
func MonthlyTotals(txs []models.Transaction, start, end time.Time) []PeriodTotal {
	first := MonthStart(start)
	last := MonthStart(end)
	if last.Before(first) {
		return []PeriodTotal{}
	}

	var out []PeriodTotal
	index := make(map[string]int)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		index[m.Format(MonthLayout)] = len(out)
		out = append(out, PeriodTotal{Period: m.Format(MonthLayout), Start: m})
	}

	sums := make([]decimal.Decimal, len(out))
	for i := range sums {
		sums[i] = decimal.Zero
	}
	for _, tx := range txs {
		if !tx.IsOutflow() {
			continue
		}
		i, ok := index[tx.Date.UTC().Format(MonthLayout)]
		if !ok {
			continue
		}
		sums[i] = sums[i].Add(decimal.NewFromFloat(tx.Amount))
		out[i].Count++
	}
	for i := range out {
		out[i].Spent = sums[i].InexactFloat64()
	}
	return out
}

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInclusive counts calendar days in [start, end], at least 1.
func DaysInclusive(start, end time.Time) int {
	s := start.UTC()
	e := end.UTC()
	s = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	e = time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
