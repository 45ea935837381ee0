// Package scan discovers per-project source logs under a projects root.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source identifies one discovered project log.
type Source struct {
	// Project is the name of the subdirectory containing the log.
	Project string

	// Path is the absolute path to the log file.
	Path string
}

// Warning records a subdirectory that was skipped during discovery.
// Warnings are diagnostic only and never fail a scan.
type Warning struct {
	Path   string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("skipped %s: %s", w.Path, w.Reason)
}

// Projects scans the immediate subdirectories of root for files named
// filename and returns one Source per match, ordered by project name.
// The scan is deliberately one level deep: nested logs belong to nested
// tools, not to this one.
//
// Hidden subdirectories are ignored. Symlinked subdirectories and
// subdirectories that cannot be read are skipped with a warning.
// An empty result is valid (zero projects discovered).
func Projects(root, filename string) ([]Source, []Warning, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("reading projects root: %w", err)
	}

	var sources []Source
	var warnings []Warning
	for _, de := range entries {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, de.Name())
		if de.Type()&os.ModeSymlink != 0 {
			// A symlink back into the tree would alias another project
			// (or the root itself); not worth following one level down.
			warnings = append(warnings, Warning{Path: dir, Reason: "symlinked directory"})
			continue
		}
		if !de.IsDir() {
			continue
		}

		path := filepath.Join(dir, filename)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			warnings = append(warnings, Warning{Path: dir, Reason: err.Error()})
			continue
		}
		if info.IsDir() {
			continue
		}
		sources = append(sources, Source{Project: de.Name(), Path: path})
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Project < sources[j].Project
	})
	return sources, warnings, nil
}
