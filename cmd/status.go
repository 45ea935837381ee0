package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/digest-dev/digestctl/internal/history"
	"github.com/digest-dev/digestctl/internal/ui"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent pipeline runs",
	Long: `List recent runs from the local history ledger: when each ran, which
date it aggregated, how much it found, and what it did to the note.`,
	Example: `  digestctl status
  digestctl status --limit 25
  digestctl status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := history.Open(appConfig.DataDir)
		if err != nil {
			return err
		}
		defer ledger.Close()

		runs, err := ledger.List(statusLimit)
		if err != nil {
			return err
		}

		if jsonOutput {
			return ui.FormatJSON(os.Stdout, runs)
		}
		ui.FormatRunList(os.Stdout, runs)
		return nil
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 10, "maximum number of runs to show")
	rootCmd.AddCommand(statusCmd)
}
