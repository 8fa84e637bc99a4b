package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"budgetlens/internal/cli"
	"budgetlens/internal/services"
)

var (
	flagFormat     string
	flagReportType string
	flagOut        string
	flagCategories []string
	flagCharts     bool
	flagDetails    bool
)

var exportCmd = &cobra.Command{
	Use:   "export <budget-id>...",
	Short: "Write a report export file for one or more budgets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", string(services.FormatCSV), "Export format: json, csv, excel, pdf")
	exportCmd.Flags().StringVarP(&flagReportType, "type", "t", string(services.ReportAll), "Report type, e.g. performance, variance, all")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (defaults to the generated filename in the current directory)")
	exportCmd.Flags().StringSliceVar(&flagCategories, "category", nil, "Restrict category rows to these ids (repeatable)")
	exportCmd.Flags().BoolVar(&flagCharts, "charts", false, "Include chart series")
	exportCmd.Flags().BoolVar(&flagDetails, "details", false, "Include per-category transaction lists")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	userID, err := requireUser()
	if err != nil {
		return err
	}
	if !services.SupportedExportFormat(flagFormat) {
		return fmt.Errorf("unsupported format %q", flagFormat)
	}
	if !services.SupportedReportType(flagReportType) {
		return fmt.Errorf("unsupported report type %q", flagReportType)
	}
	start, end, err := window()
	if err != nil {
		return err
	}
	budgetIDs := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := requireID("budget id", arg)
		if err != nil {
			return err
		}
		budgetIDs = append(budgetIDs, id)
	}

	opts := services.ExportOptions{
		Format:         services.ExportFormat(flagFormat),
		ReportType:     services.ReportType(flagReportType),
		DateRange:      services.DateRange{Start: start, End: end},
		BudgetIDs:      budgetIDs,
		Categories:     flagCategories,
		IncludeCharts:  flagCharts,
		IncludeDetails: flagDetails,
	}

	return withApp(func(a *app) error {
		result, err := a.exports.ExportBudgetReport(cmd.Context(), userID, opts)
		if err != nil {
			return err
		}
		path := flagOut
		if path == "" {
			path = result.Filename
		}
		if err := os.WriteFile(path, result.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		abs, _ := filepath.Abs(path)
		fmt.Fprintf(cmd.OutOrStdout(), "  Wrote %s %s\n", abs, cli.Muted("(%s, %d bytes)", result.Format, len(result.Data)))
		return nil
	})
}
