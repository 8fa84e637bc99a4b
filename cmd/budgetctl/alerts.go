package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"budgetlens/internal/cli"
	"budgetlens/internal/services"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts [budget-id]",
	Short: "Check active budgets for threshold and overspend alerts",
	Long:  "Evaluate every active budget of --user, or only the given budget, and list the alerts raised right now.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAlerts,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, args []string) error {
	userID, err := requireUser()
	if err != nil {
		return err
	}
	var budgetID *string
	if len(args) == 1 {
		id, err := requireID("budget id", args[0])
		if err != nil {
			return err
		}
		budgetID = &id
	}

	return withApp(func(a *app) error {
		alerts, err := a.alerts.CheckBudgetAlerts(cmd.Context(), userID, budgetID)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), alerts)
		}
		renderAlertTable(cmd.OutOrStdout(), alerts)
		return nil
	})
}

func renderAlertTable(w io.Writer, alerts []services.Alert) {
	if len(alerts) == 0 {
		fmt.Fprintln(w, cli.Muted("  No alerts."))
		return
	}
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, []string{
			a.BudgetName,
			string(a.Type),
			cli.RenderStatus(string(a.Severity)),
			cli.FormatMoney(a.CurrentAmount, ""),
			cli.FormatMoney(a.LimitAmount, ""),
			cli.FormatPercent(a.UtilizationPercentage),
		})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%d alert(s)", len(alerts)),
		Headers: []string{"Budget", "Type", "Severity", "Current", "Limit", "Used"},
		Rows:    rows,
	}))
}
