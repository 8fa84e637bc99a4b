package services

import (
	"time"

	"budgetlens/internal/config"
	"budgetlens/internal/models"
)

// AnalyticsConfig tunes the analytics services.
type AnalyticsConfig struct {
	// DefaultAlertThreshold applies to budgets without their own threshold.
	DefaultAlertThreshold float64
	// AlertConcurrency bounds how many budgets are evaluated at once.
	AlertConcurrency int
	// ForecastHistoryMonths is how far back a forecast looks for spend history.
	ForecastHistoryMonths int
	// TrendHistoryMonths is how many months before the window a trend analysis covers.
	TrendHistoryMonths int
	// TransactionQueryLimit caps the transactions fetched per query.
	TransactionQueryLimit int
	// Now is the report clock.
	Now func() time.Time
}

// DefaultAnalyticsConfig returns the built-in defaults.
func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		DefaultAlertThreshold: models.DefaultAlertThreshold,
		AlertConcurrency:      4,
		ForecastHistoryMonths: 6,
		TrendHistoryMonths:    6,
		TransactionQueryLimit: 10000,
		Now:                   time.Now,
	}
}

// NewAnalyticsConfig builds an AnalyticsConfig from the application config.
func NewAnalyticsConfig(cfg *config.Config) AnalyticsConfig {
	ac := DefaultAnalyticsConfig()
	if cfg == nil {
		return ac
	}
	ac.DefaultAlertThreshold = cfg.AlertDefaultThreshold
	ac.AlertConcurrency = cfg.AlertConcurrency
	ac.ForecastHistoryMonths = cfg.ForecastHistoryMonths
	ac.TrendHistoryMonths = cfg.TrendHistoryMonths
	ac.TransactionQueryLimit = cfg.TransactionQueryLimit
	return ac.withDefaults()
}

// withDefaults replaces unset fields with their defaults.
func (c AnalyticsConfig) withDefaults() AnalyticsConfig {
	d := DefaultAnalyticsConfig()
	if c.DefaultAlertThreshold <= 0 {
		c.DefaultAlertThreshold = d.DefaultAlertThreshold
	}
	if c.AlertConcurrency <= 0 {
		c.AlertConcurrency = d.AlertConcurrency
	}
	if c.ForecastHistoryMonths <= 0 {
		c.ForecastHistoryMonths = d.ForecastHistoryMonths
	}
	if c.TrendHistoryMonths <= 0 {
		c.TrendHistoryMonths = d.TrendHistoryMonths
	}
	if c.TransactionQueryLimit <= 0 {
		c.TransactionQueryLimit = d.TransactionQueryLimit
	}
	if c.Now == nil {
		c.Now = d.Now
	}
	return c
}
