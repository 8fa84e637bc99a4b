package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"budgetlens/internal/cli"
	"budgetlens/internal/services"
)

var performanceCmd = &cobra.Command{
	Use:   "performance <budget-id>",
	Short: "Spend against allocation per category",
	Args:  cobra.ExactArgs(1),
	RunE:  runPerformance,
}

var vsActualCmd = &cobra.Command{
	Use:   "vs-actual <budget-id>",
	Short: "Budgeted and actual spend side by side",
	Args:  cobra.ExactArgs(1),
	RunE:  runVsActual,
}

var trendsCmd = &cobra.Command{
	Use:   "trends <budget-id>",
	Short: "Monthly spend trend and next-month projection",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrends,
}

var varianceCmd = &cobra.Command{
	Use:   "variance <budget-id>",
	Short: "Favorable and unfavorable variance per category",
	Args:  cobra.ExactArgs(1),
	RunE:  runVariance,
}

var forecastCmd = &cobra.Command{
	Use:   "forecast <budget-id>",
	Short: "Project spend over --start/--end from prior history",
	Args:  cobra.ExactArgs(1),
	RunE:  runForecast,
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <budget-id>",
	Short: "Transaction statistics per category",
	Args:  cobra.ExactArgs(1),
	RunE:  runBreakdown,
}

func init() {
	rootCmd.AddCommand(performanceCmd, vsActualCmd, trendsCmd, varianceCmd, forecastCmd, breakdownCmd)
}

// runReport is the shared path of every report command: parse args, build the
// report, then print it as JSON or through render.
func runReport[T any](cmd *cobra.Command, args []string,
	build func(ctx context.Context, r services.BudgetReportServicer, userID, budgetID string) (T, error),
	render func(w io.Writer, report T),
) error {
	userID, err := requireUser()
	if err != nil {
		return err
	}
	budgetID, err := requireID("budget id", args[0])
	if err != nil {
		return err
	}
	return withApp(func(a *app) error {
		report, err := build(cmd.Context(), a.reports, userID, budgetID)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), report)
		}
		render(cmd.OutOrStdout(), report)
		return nil
	})
}

func runPerformance(cmd *cobra.Command, args []string) error {
	start, end, err := window()
	if err != nil {
		return err
	}
	return runReport(cmd, args,
		func(ctx context.Context, r services.BudgetReportServicer, userID, budgetID string) (*services.PerformanceReport, error) {
			return r.GetBudgetPerformanceReport(ctx, userID, budgetID, start, end)
		},
		renderPerformance)
}

func runVsActual(cmd *cobra.Command, args []string) error {
	start, end, err := window()
	if err != nil {
		return err
	}
	return runReport(cmd, args,
		func(ctx context.Context, r services.BudgetReportServicer, userID, budgetID string) (*services.BudgetVsActualReport, error) {
			return r.GetBudgetVsActualReport(ctx, userID, budgetID, start, end)
		},
		renderVsActual)
}

func runTrends(cmd *cobra.Command, args []string) error {
	start, end, err := window()
	if err != nil {
		return err
	}
	return runReport(cmd, args,
		func(ctx context.Context, r services.BudgetReportServicer, userID, budgetID string) (*services.TrendAnalysis, error) {
			return r.GetBudgetTrendAnalysis(ctx, userID, budgetID, start, end)
		},
		renderTrends)
}

func runVariance(cmd *cobra.Command, args []string) error {
	start, end, err := window()
	if err != nil {
		return err
	}
	return runReport(cmd, args,
		func(ctx context.Context, r services.BudgetReportServicer, userID, budgetID string) (*services.VarianceAnalysis, error) {
			return r.GetBudgetVarianceAnalysis(ctx, userID, budgetID, start, end)
		},
		renderVariance)
}

func runForecast(cmd *cobra.Command, args []string) error {
	start, end, err := window()
	if err != nil {
		return err
	}
	return runReport(cmd, args,
		func(ctx context.Context, r services.BudgetReportServicer, userID, budgetID string) (*services.BudgetForecast, error) {
			return r.GetBudgetForecast(ctx, userID, budgetID, start, end)
		},
		renderForecast)
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	start, end, err := window()
	if err != nil {
		return err
	}
	return runReport(cmd, args,
		func(ctx context.Context, r services.BudgetReportServicer, userID, budgetID string) (*services.CategoryBreakdownReport, error) {
			return r.GetBudgetCategoryBreakdown(ctx, userID, budgetID, start, end)
		},
		renderBreakdown)
}

func renderPerformance(w io.Writer, r *services.PerformanceReport) {
	p := r.Performance
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(r.BudgetName+" · Performance"))
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderKeyValues([][2]string{
		{"Period", cli.FormatPeriod(r.Period.StartDate, r.Period.EndDate)},
		{"Allocated", cli.FormatMoney(p.TotalAllocated, r.Currency)},
		{"Spent", cli.FormatMoney(p.TotalSpent, r.Currency)},
		{"Remaining", cli.FormatMoney(p.RemainingAmount, r.Currency)},
		{"Variance", cli.FormatSignedMoney(p.VarianceAmount, r.Currency) + " (" + cli.FormatPercent(p.VariancePercentage) + ")"},
		{"Utilization", cli.RenderUtilizationBar(p.UtilizationPercentage, 30) + " " + cli.FormatPercent(p.UtilizationPercentage)},
		{"Status", cli.RenderStatus(string(p.Status))},
	}))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(r.CategoryPerformance))
	for _, c := range r.CategoryPerformance {
		rows = append(rows, []string{
			c.CategoryName,
			cli.FormatMoney(c.AllocatedAmount, r.Currency),
			cli.FormatMoney(c.SpentAmount, r.Currency),
			cli.FormatSignedMoney(c.VarianceAmount, r.Currency),
			cli.FormatPercent(c.UtilizationPercentage),
			cli.RenderStatus(string(c.Status)),
		})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Categories",
		Headers: []string{"Category", "Allocated", "Spent", "Variance", "Used", "Status"},
		Rows:    rows,
	}))
	renderInsights(w, r.Insights)
	renderAlerts(w, r.Alerts)
}

func renderVsActual(w io.Writer, r *services.BudgetVsActualReport) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(r.BudgetName+" · Budget vs Actual"))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(r.CategoryComparison)+2)
	for _, c := range r.CategoryComparison {
		rows = append(rows, []string{
			c.CategoryName,
			cli.FormatMoney(c.Budgeted, r.Currency),
			cli.FormatMoney(c.Actual, r.Currency),
			cli.FormatSignedMoney(c.Variance, r.Currency),
			string(c.EfficiencyStatus),
		})
	}
	s := r.Summary
	rows = append(rows, []string{"---"}, []string{
		"Total",
		cli.FormatMoney(s.TotalBudgeted, r.Currency),
		cli.FormatMoney(s.TotalActual, r.Currency),
		cli.FormatSignedMoney(s.Variance, r.Currency),
		cli.RenderStatus(string(s.Status)),
	})
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   cli.FormatPeriod(r.Period.StartDate, r.Period.EndDate),
		Headers: []string{"Category", "Budgeted", "Actual", "Variance", "Efficiency"},
		Rows:    rows,
	}))
}

func renderTrends(w io.Writer, r *services.TrendAnalysis) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(r.BudgetName+" · Trends"))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(r.Trends))
	for _, p := range r.Trends {
		rows = append(rows, []string{
			p.Period,
			cli.FormatMoney(p.Spent, r.Currency),
			cli.FormatPercent(p.UtilizationPercentage),
			cli.FormatPercent(p.ChangePercentage),
			strconv.Itoa(p.TransactionCount),
		})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Monthly spend",
		Headers: []string{"Month", "Spent", "Used", "Change", "Txns"},
		Rows:    rows,
	}))
	fmt.Fprintln(w)

	p := r.Projections
	fmt.Fprint(w, cli.RenderKeyValues([][2]string{
		{"Direction", string(p.TrendDirection)},
		{"Average / month", cli.FormatMoney(p.AverageMonthlySpend, r.Currency)},
		{"Projected " + p.NextPeriod, cli.FormatMoney(p.ProjectedSpend, r.Currency) + " (" + cli.FormatPercent(p.ProjectedUtilization) + ")"},
		{"Fit", fmt.Sprintf("%s, R² %.2f over %d months", p.Method, p.RSquared, p.PeriodsAnalyzed)},
	}))
	renderInsights(w, r.Insights)
}

func renderVariance(w io.Writer, r *services.VarianceAnalysis) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(r.BudgetName+" · Variance"))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(r.CategoryVariances))
	for _, v := range r.CategoryVariances {
		rows = append(rows, []string{
			v.CategoryName,
			cli.FormatMoney(v.AllocatedAmount, r.Currency),
			cli.FormatMoney(v.SpentAmount, r.Currency),
			cli.FormatSignedMoney(v.Variance, r.Currency),
			string(v.VarianceType),
			cli.RenderStatus(string(v.Impact)),
		})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   cli.FormatPeriod(r.Period.StartDate, r.Period.EndDate),
		Headers: []string{"Category", "Allocated", "Spent", "Variance", "Type", "Impact"},
		Rows:    rows,
	}))
	fmt.Fprintln(w)

	s := r.VarianceSummary
	fmt.Fprint(w, cli.RenderKeyValues([][2]string{
		{"Favorable", cli.FormatMoney(s.FavorableVariances, r.Currency)},
		{"Unfavorable", cli.FormatMoney(s.UnfavorableVariances, r.Currency)},
		{"Net", cli.FormatSignedMoney(s.NetVariance, r.Currency)},
	}))
}

func renderForecast(w io.Writer, r *services.BudgetForecast) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(r.BudgetName+" · Forecast"))
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderKeyValues([][2]string{
		{"Forecast window", cli.FormatPeriod(r.ForecastPeriod.StartDate, r.ForecastPeriod.EndDate)},
		{"History", cli.FormatPeriod(r.HistoricalPeriod.StartDate, r.HistoricalPeriod.EndDate)},
		{"Methodology", string(r.Methodology)},
		{"Confidence", cli.RenderStatus(string(r.Confidence))},
		{"Daily rate", cli.FormatMoney(r.DailySpendRate, r.Currency)},
	}))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(r.Scenarios))
	for _, s := range r.Scenarios {
		rows = append(rows, []string{
			string(s.Scenario),
			cli.FormatPercent(s.Probability * 100),
			cli.FormatMoney(s.ProjectedSpend, r.Currency),
			cli.FormatSignedMoney(s.ProjectedVariance, r.Currency),
		})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Scenarios",
		Headers: []string{"Scenario", "Probability", "Spend", "Variance"},
		Rows:    rows,
	}))

	if len(r.RiskFactors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Risks")
		for _, rf := range r.RiskFactors {
			fmt.Fprintf(w, "  %s %s\n", cli.RenderStatus(string(rf.Severity)), rf.Description)
		}
	}
	renderInsights(w, r.Recommendations)
}

func renderBreakdown(w io.Writer, r *services.CategoryBreakdownReport) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(r.BudgetName+" · Categories"))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		name := c.CategoryName
		if c.CategoryPath != "" {
			name = c.CategoryPath
		}
		rows = append(rows, []string{
			name,
			cli.FormatMoney(c.SpentAmount, r.Currency),
			cli.FormatPercent(c.PercentageOfTotal),
			strconv.Itoa(c.TransactionCount),
			cli.FormatMoney(c.AverageTransactionAmount, r.Currency),
			cli.FormatMoney(c.LargestTransaction, r.Currency),
		})
	}
	t := r.Totals
	rows = append(rows, []string{"---"}, []string{
		"Total",
		cli.FormatMoney(t.TotalSpent, r.Currency),
		"",
		strconv.Itoa(t.TransactionCount),
		"",
		"",
	})
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   cli.FormatPeriod(r.Period.StartDate, r.Period.EndDate),
		Headers: []string{"Category", "Spent", "Share", "Txns", "Average", "Largest"},
		Rows:    rows,
	}))
	renderInsights(w, r.Insights)
}

func renderInsights(w io.Writer, insights []services.Insight) {
	if len(insights) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, in := range insights {
		fmt.Fprintf(w, "  %s %s\n", cli.RenderStatus(string(in.Priority)), in.Message)
	}
}

func renderAlerts(w io.Writer, alerts []services.Alert) {
	if len(alerts) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, a := range alerts {
		fmt.Fprintf(w, "  %s %s\n", cli.RenderStatus(string(a.Severity)), strings.TrimSpace(a.Message))
	}
}
