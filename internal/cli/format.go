package cli

import (
	"time"

	"budgetlens/internal/analytics"
)

// FormatMoney formats an amount in the report's currency.
func FormatMoney(amount float64, currency string) string {
	return analytics.FormatMoney(amount, currency)
}

// FormatSignedMoney formats an amount with an explicit "+" when positive.
func FormatSignedMoney(amount float64, currency string) string {
	s := analytics.FormatMoney(amount, currency)
	if amount > 0 {
		return "+" + s
	}
	return s
}

// FormatPercent formats a percentage, e.g. 87.5 -> "87.5%".
func FormatPercent(p float64) string {
	return analytics.FormatPercent(p) + "%"
}

// FormatPeriod formats a date window as "2025-03-01 → 2025-03-31".
func FormatPeriod(start, end time.Time) string {
	return start.Format(time.DateOnly) + " → " + end.Format(time.DateOnly)
}
