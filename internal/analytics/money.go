package analytics

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"MYR": "RM",
	"SGD": "S$",
}

// Cents rounds an amount to two decimal places.
func Cents(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Round4 rounds to four decimal places. Used for ratios.
func Round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}

// Sum adds amounts exactly at decimal precision.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}

// FormatMoney renders an amount with its currency symbol, e.g. "$1000.00".
// Unknown currencies are prefixed with their code.
func FormatMoney(amount float64, currency string) string {
	s := Cents(amount).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	code := strings.ToUpper(currency)
	if code == "" {
		code = "USD"
	}
	if sym, ok := currencySymbols[code]; ok {
		return sign + sym + s
	}
	return sign + code + " " + s
}

// FormatPercent renders a percentage with at most two decimals and no trailing zeros.
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}
