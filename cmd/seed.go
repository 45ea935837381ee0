package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/digest-dev/digestctl/internal/pipeline"
	"github.com/digest-dev/digestctl/internal/ui"
)

var seedForce bool

// seedProject describes one demo project to scaffold.
type seedProject struct {
	name  string
	intro string
	// entries is a pool of accomplishment texts to draw from.
	entries []string
}

var seedProjects = []seedProject{
	{
		name:  "api-server",
		intro: "Backend service powering the mobile app.",
		entries: []string{
			"Shipped the rate limiter for the public API",
			"Cut p99 latency on the search endpoint by 40%",
			"Migrated session storage off the legacy cluster",
			"Fixed the flaky integration test in the auth suite",
			"Added structured request logging",
		},
	},
	{
		name:  "mobile-app",
		intro: "iOS and Android client.",
		entries: []string{
			"Landed the offline sync rewrite",
			"Fixed the crash on resume after background upload",
			"Reduced cold start time below one second",
			"Shipped dark mode to the beta channel",
		},
	},
	{
		name:  "infra",
		intro: "Deployment and tooling.",
		entries: []string{
			"Moved CI to the new runner pool",
			"Automated certificate rotation",
			"Wrote the runbook for the on-call rotation",
			"Upgraded the staging cluster",
		},
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [dir]",
	Short: "Scaffold demo project logs for trying digestctl",
	Long: `Create a handful of demo project directories with dated accomplishment
logs covering the last week, so the pipeline has something to aggregate.

If dir is omitted, the configured projects root is used. Seeding into a
non-empty directory asks for confirmation first.`,
	Example: `  digestctl seed ./demo-projects
  digestctl seed
  digestctl seed --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := appConfig.ProjectsRoot
		if len(args) == 1 {
			root = args[0]
		}
		if root == "" {
			return fmt.Errorf("%w: no directory given and projects root not set", pipeline.ErrConfig)
		}

		if !seedForce {
			if entries, err := os.ReadDir(root); err == nil && len(entries) > 0 {
				ok, err := ui.Confirm(fmt.Sprintf("Seed demo projects into non-empty %s?", root))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(os.Stdout, "Aborted.")
					return nil
				}
			}
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		filename := appConfig.SourceFilename
		for _, p := range seedProjects {
			if err := writeSeedLog(root, filename, p, rng); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Seeded %s\n", filepath.Join(root, p.name, filename))
		}
		fmt.Fprintf(os.Stdout, "\nTry: digestctl parse --json\n")
		return nil
	},
}

// writeSeedLog creates one project directory with a log covering the last
// seven days, two to three entries per project scattered across them.
func writeSeedLog(root, filename string, p seedProject, rng *rand.Rand) error {
	dir := filepath.Join(root, p.name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n## Recent Accomplishments\n\n", p.name, p.intro)

	picks := rng.Perm(len(p.entries))
	count := 2 + rng.Intn(2)
	if count > len(picks) {
		count = len(picks)
	}
	today := time.Now()
	for i := 0; i < count; i++ {
		day := today.AddDate(0, 0, -rng.Intn(7))
		fmt.Fprintf(&b, "- %s: %s\n", day.Format("2006-01-02"), p.entries[picks[i]])
	}
	b.WriteString("\n## Notes\n\nFree-form notes live here; digestctl ignores them.\n")

	return os.WriteFile(filepath.Join(dir, filename), []byte(b.String()), 0644)
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "skip the non-empty directory confirmation")
	rootCmd.AddCommand(seedCmd)
}
