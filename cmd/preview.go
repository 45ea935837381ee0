package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/digest-dev/digestctl/internal/pipeline"
	"github.com/digest-dev/digestctl/internal/ui"
)

var previewDate string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the daily note a run would produce",
	Long: `Compose the daily note content an update would write and render it to
the terminal. In a terminal the markdown is rendered as rich text; piped
output is the raw note content, byte for byte what an update would write.`,
	Example: `  digestctl preview
  digestctl preview --date 2025-01-21
  digestctl preview | diff - "$VAULT/Daily Notes/2025/01-January/2025-01-21.md"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(previewDate)
		if err != nil {
			return err
		}

		content, col, err := pipeline.Preview(planOptions(date))
		if err != nil {
			return err
		}
		ui.FormatWarnings(os.Stderr, col.Warnings)

		if term.IsTerminal(int(os.Stdout.Fd())) {
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				width = 80
			}
			fmt.Fprintln(os.Stdout, ui.RenderMarkdown(content, width))
			return nil
		}
		fmt.Fprint(os.Stdout, content)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewDate, "date", "", "target date (YYYY-MM-DD), default today")
	rootCmd.AddCommand(previewCmd)
}
