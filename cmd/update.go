package cmd

import (
	"github.com/spf13/cobra"
)

var (
	updateDate   string
	updateDryRun bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Merge accomplishments into the daily note",
	Long: `Discover project logs, aggregate the target date's accomplishments,
and merge them into the daily note's managed section.

With --dry-run, the resulting note content is printed to stdout and
nothing is written.`,
	Example: `  digestctl update
  digestctl update --date 2025-01-21
  digestctl update --dry-run
  digestctl update --vault ~/scratch-vault --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(updateDate)
		if err != nil {
			return err
		}
		return updateRun(date, updateDryRun)
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateDate, "date", "", "target date (YYYY-MM-DD), default today")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "print the resulting note without writing it")
	rootCmd.AddCommand(updateCmd)
}
