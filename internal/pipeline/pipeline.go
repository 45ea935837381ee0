// Package pipeline wires discovery, parsing, aggregation, and the daily
// note upsert into one run. Execution is sequential and run-to-completion;
// re-running is always safe (the upsert is idempotent), which is also the
// recovery strategy for any failed run.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/digest-dev/digestctl/internal/accomplishment"
	"github.com/digest-dev/digestctl/internal/aggregate"
	"github.com/digest-dev/digestctl/internal/config"
	"github.com/digest-dev/digestctl/internal/journal"
	"github.com/digest-dev/digestctl/internal/notepath"
	"github.com/digest-dev/digestctl/internal/parse"
	"github.com/digest-dev/digestctl/internal/scan"
)

// ErrConfig indicates the run was aborted before touching the target note
// because the configuration cannot be resolved.
var ErrConfig = errors.New("configuration")

// Options are the resolved inputs for one run. They are plain data: all
// environment and flag overrides are applied before a pipeline sees them.
type Options struct {
	ProjectsRoot    string
	VaultPath       string
	DailyNoteFormat string
	SourceFilename  string
	SectionHeadings []string
	Date            time.Time
}

// FromConfig builds Options from loaded configuration for a target date.
func FromConfig(cfg *config.Config, date time.Time) Options {
	return Options{
		ProjectsRoot:    cfg.ProjectsRoot,
		VaultPath:       cfg.VaultPath,
		DailyNoteFormat: cfg.DailyNoteFormat,
		SourceFilename:  cfg.SourceFilename,
		SectionHeadings: cfg.SectionHeadings,
		Date:            date,
	}
}

// Collection is the outcome of the read-only half of the pipeline.
type Collection struct {
	Sources  []scan.Source
	Warnings []scan.Warning
	Day      aggregate.Day
	Skipped  int
}

// Result describes a completed run.
type Result struct {
	Collection
	Note journal.Result
}

// NotePath resolves the absolute path of the target daily note. It
// validates the vault path and format template and reads nothing.
func NotePath(opts Options) (string, error) {
	if opts.VaultPath == "" {
		return "", fmt.Errorf("%w: vault path not set (set vault_path or OBSIDIAN_VAULT_PATH)", ErrConfig)
	}
	info, err := os.Stat(opts.VaultPath)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: vault not found at %s", ErrConfig, opts.VaultPath)
	}

	rel, err := notepath.Resolve(opts.Date, opts.DailyNoteFormat)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return filepath.Join(opts.VaultPath, rel+".md"), nil
}

// Collect runs discovery, parsing, and aggregation for the target date.
// It has no side effects on the vault.
func Collect(opts Options) (Collection, error) {
	if opts.ProjectsRoot == "" {
		return Collection{}, fmt.Errorf("%w: projects root not set", ErrConfig)
	}

	sources, warnings, err := scan.Projects(opts.ProjectsRoot, opts.SourceFilename)
	if err != nil {
		return Collection{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	var all []accomplishment.Entry
	skipped := 0
	for _, src := range sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			warnings = append(warnings, scan.Warning{Path: src.Path, Reason: err.Error()})
			continue
		}
		res := parse.Document(data, src.Project, opts.SectionHeadings)
		all = append(all, res.Entries...)
		skipped += res.Skipped
	}

	return Collection{
		Sources:  sources,
		Warnings: warnings,
		Day:      aggregate.ForDate(all, opts.Date),
		Skipped:  skipped,
	}, nil
}

// Run executes the full pipeline: resolve the target note path, collect
// entries, and upsert the managed region. Configuration is validated
// before any source document is read and before the note is touched.
func Run(opts Options) (Result, error) {
	path, err := NotePath(opts)
	if err != nil {
		return Result{}, err
	}

	col, err := Collect(opts)
	if err != nil {
		return Result{}, err
	}

	note, err := journal.Upsert(path, col.Day)
	if err != nil {
		return Result{Collection: col}, err
	}
	return Result{Collection: col, Note: note}, nil
}

// Preview returns the note content a run would write, without writing.
func Preview(opts Options) (string, Collection, error) {
	path, err := NotePath(opts)
	if err != nil {
		return "", Collection{}, err
	}
	col, err := Collect(opts)
	if err != nil {
		return "", Collection{}, err
	}
	content, _, err := journal.Compose(path, col.Day)
	if err != nil {
		return "", col, err
	}
	return content, col, nil
}
