package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"budgetlens/internal/config"
	"budgetlens/internal/database"
	"budgetlens/internal/logger"
	"budgetlens/internal/services"
	"budgetlens/internal/uuid"
)

var (
	flagUser  string
	flagStart string
	flagEnd   string
	flagJSON  bool
)

var rootCmd = &cobra.Command{
	Use:           "budgetctl",
	Short:         "Budget analytics from the command line",
	Long:          "Build budget reports, forecasts, alerts and exports straight from the BudgetLens database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", os.Getenv("BUDGETCTL_USER"), "Owner user id (defaults to $BUDGETCTL_USER)")
	rootCmd.PersistentFlags().StringVar(&flagStart, "start", "", "Window start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagEnd, "end", "", "Window end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print the raw report as JSON")
}

// app is the service graph a command runs against.
type app struct {
	reports services.BudgetReportServicer
	alerts  services.BudgetAlertServicer
	exports services.BudgetExportServicer
	close   func()
}

// openApp connects to the database. Tests replace it.
var openApp = func() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a := newApp(dbManager.DB(), services.NewAnalyticsConfig(cfg))
	a.close = func() {
		if err := dbManager.Close(); err != nil {
			logger.Get().Warnf("database close error: %v", err)
		}
	}
	return a, nil
}

func newApp(db *gorm.DB, cfg services.AnalyticsConfig) *app {
	providers := services.Providers{
		Budgets:      services.NewBudgetStore(db),
		Transactions: services.NewTransactionQuery(db),
		Categories:   services.NewCategoryLookup(db),
	}
	reports := services.NewBudgetReportService(providers, cfg)
	return &app{
		reports: reports,
		alerts:  services.NewBudgetAlertService(providers, cfg),
		exports: services.NewBudgetExportService(reports, nil, cfg),
		close:   func() {},
	}
}

// withApp opens the service graph for the duration of fn.
func withApp(fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

func requireUser() (string, error) {
	if flagUser == "" {
		return "", fmt.Errorf("--user is required (or set BUDGETCTL_USER)")
	}
	id, err := uuid.Parse(flagUser)
	if err != nil {
		return "", fmt.Errorf("--user must be a UUID: %w", err)
	}
	return id, nil
}

func requireID(name, value string) (string, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%s must be a UUID: %w", name, err)
	}
	return id, nil
}

// window parses --start/--end. Omitted dates stay zero so the service
// defaults them to the budget's own window.
func window() (time.Time, time.Time, error) {
	start, err := parseFlagDate("--start", flagStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseFlagDate("--end", flagEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end must not be before --start")
	}
	return start, end, nil
}

func parseFlagDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD", name)
	}
	return t, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
