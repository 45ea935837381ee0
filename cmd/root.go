package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/digest-dev/digestctl/internal/accomplishment"
	"github.com/digest-dev/digestctl/internal/config"
	"github.com/digest-dev/digestctl/internal/history"
	"github.com/digest-dev/digestctl/internal/journal"
	"github.com/digest-dev/digestctl/internal/pipeline"
	"github.com/digest-dev/digestctl/internal/ui"
)

var (
	cfgFile       string
	jsonOutput    bool
	vaultOverride string
	appConfig     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "digestctl",
	Short: "Roll up project accomplishments into your daily note",
	Long: `digestctl collects dated accomplishment entries from per-project log
files and merges them into the matching daily note in your Obsidian
vault. Only the managed section of the note is ever rewritten; the rest
of the note belongs to you.

Running with no arguments updates today's daily note.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("%w: loading config: %v", pipeline.ErrConfig, err)
		}
		appConfig = cfg

		// The env override and the flag are resolved here, once, and
		// carried as plain data from this point on.
		if v := os.Getenv("OBSIDIAN_VAULT_PATH"); v != "" {
			appConfig.VaultPath = v
		}
		if vaultOverride != "" {
			appConfig.VaultPath = vaultOverride
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRun(accomplishment.NormalizeDate(time.Now()), false)
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, journal.ErrWrite) {
			return 2
		}
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&vaultOverride, "vault", "", "vault path override (does not touch config)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// planOptions builds pipeline options for a target date from the loaded
// configuration.
func planOptions(date time.Time) pipeline.Options {
	return pipeline.FromConfig(appConfig, date)
}

// parseDateFlag parses an optional --date value, defaulting to today.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return accomplishment.NormalizeDate(time.Now()), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (use YYYY-MM-DD)", pipeline.ErrConfig, s)
	}
	return d, nil
}

// recordRun appends the run to the history ledger. Ledger trouble is a
// diagnostic, never a run failure.
func recordRun(res pipeline.Result) {
	if !appConfig.History {
		return
	}
	ledger, err := history.Open(appConfig.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: history ledger unavailable:", err)
		return
	}
	defer ledger.Close()

	action := "updated"
	if res.Note.Created {
		action = "created"
	} else if !res.Note.Changed {
		action = "unchanged"
	}
	_, err = ledger.Record(history.Run{
		Date:       res.Day.Date,
		Projects:   len(res.Sources),
		Entries:    len(res.Day.Entries),
		Skipped:    res.Skipped,
		NotePath:   res.Note.Path,
		NoteAction: action,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: recording run:", err)
	}
}

// updateRun executes the full pipeline for the given date.
func updateRun(date time.Time, dryRun bool) error {
	if dryRun {
		content, col, err := pipeline.Preview(planOptions(date))
		if err != nil {
			return err
		}
		ui.FormatWarnings(os.Stderr, col.Warnings)
		fmt.Fprint(os.Stdout, content)
		return nil
	}

	res, err := pipeline.Run(planOptions(date))
	if err != nil {
		return err
	}
	ui.FormatWarnings(os.Stderr, res.Warnings)
	recordRun(res)

	if jsonOutput {
		return ui.FormatJSON(os.Stdout, ui.BuildDayJSON(res.Day))
	}
	ui.FormatRun(os.Stdout, res)
	return nil
}
