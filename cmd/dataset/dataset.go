// Package dataset provides commands for inspecting and exporting the
// loaded finance dataset
package dataset

import (
	"time"

	"fjacquet/cfo-copilot/cmd/root"
	"fjacquet/cfo-copilot/internal/common"
	"fjacquet/cfo-copilot/internal/dataset"
	"fjacquet/cfo-copilot/internal/dateutils"
	"fjacquet/cfo-copilot/internal/fx"
	"fjacquet/cfo-copilot/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the dataset command
var Cmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect or export the loaded dataset",
	Long:  `Inspect the loaded finance tables or export the USD-normalized actuals.`,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print per-table row counts and period coverage",
	Run:   infoFunc,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the USD-normalized actuals to a CSV file",
	Long: `Export the actuals table to CSV with every amount converted to USD
using the loaded FX rates. Rows without a matching rate keep their
original amount and are marked as unconverted.`,
	Run: exportFunc,
}

// OutputFile is the target of the export subcommand
var OutputFile string

func init() {
	exportCmd.Flags().StringVarP(&OutputFile, "output", "o", "normalized.csv", "Output CSV file")

	Cmd.AddCommand(infoCmd)
	Cmd.AddCommand(exportCmd)
}

func infoFunc(cmd *cobra.Command, args []string) {
	root.Log.Debug("Dataset info command called")

	appContainer := root.GetContainer()
	if appContainer == nil {
		root.GetLogrusAdapter().Fatal("Container not initialized")
	}

	snap := appContainer.GetSnapshot()
	cfg := appContainer.GetConfig()

	cmd.Printf("Data source: %s\n", cfg.Data.Source)
	counts := snap.Counts()
	for _, table := range []string{dataset.TableActuals, dataset.TableBudget, dataset.TableFx, dataset.TableCash} {
		cmd.Printf("  %-7s %d rows\n", table, counts[table])
	}

	if first, last, ok := coverage(snap); ok {
		cmd.Printf("Coverage: %s to %s\n", first, last)
	} else {
		cmd.Println("Coverage: no rows loaded")
	}
	cmd.Printf("Generated: %s\n", dateutils.FormatDate(time.Now().UTC(), dateutils.DateLayoutFull))
}

func exportFunc(cmd *cobra.Command, args []string) {
	root.Log.Debug("Dataset export command called")

	appContainer := root.GetContainer()
	if appContainer == nil {
		root.GetLogrusAdapter().Fatal("Container not initialized")
	}

	logger := root.GetLogrusAdapter()
	snap := appContainer.GetSnapshot()

	normalized := fx.NewTable(snap.Rates).Normalize(snap.Actuals)
	if err := common.WriteNormalizedToCSV(normalized, OutputFile, logger); err != nil {
		logger.Fatalf("Error exporting normalized actuals: %v", err)
	}

	root.Log.Infof("Exported %d normalized rows to %s", len(normalized), OutputFile)
}

// coverage returns the earliest and latest period across all four tables.
func coverage(snap *dataset.Snapshot) (models.Period, models.Period, bool) {
	var periods []models.Period
	for _, row := range snap.Actuals {
		periods = append(periods, row.Period)
	}
	for _, row := range snap.Budget {
		periods = append(periods, row.Period)
	}
	for _, rate := range snap.Rates {
		periods = append(periods, rate.Period)
	}
	for _, row := range snap.Cash {
		periods = append(periods, row.Period)
	}

	if len(periods) == 0 {
		return models.Period{}, models.Period{}, false
	}

	first, last := periods[0], periods[0]
	for _, p := range periods[1:] {
		if p.Before(first) {
			first = p
		}
		if last.Before(p) {
			last = p
		}
	}
	return first, last, true
}
