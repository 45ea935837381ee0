package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/digest-dev/digestctl/internal/pipeline"
	"github.com/digest-dev/digestctl/internal/ui"
)

var parseDate string

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Show the day's accomplishments without touching the vault",
	Long: `Discover project logs and print the aggregated accomplishments for the
target date. The vault is never read or written; this is the read-only
half of the pipeline.`,
	Example: `  digestctl parse
  digestctl parse --date 2025-01-21
  digestctl parse --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(parseDate)
		if err != nil {
			return err
		}

		col, err := pipeline.Collect(planOptions(date))
		if err != nil {
			return err
		}
		ui.FormatWarnings(os.Stderr, col.Warnings)

		if jsonOutput {
			return ui.FormatJSON(os.Stdout, ui.BuildDayJSON(col.Day))
		}
		ui.FormatDay(os.Stdout, col.Day)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseDate, "date", "", "target date (YYYY-MM-DD), default today")
	rootCmd.AddCommand(parseCmd)
}
