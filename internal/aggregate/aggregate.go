// Package aggregate builds the canonical per-day record set from raw
// parsed entries. Everything here is pure: same input, same output, no
// side effects.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/digest-dev/digestctl/internal/accomplishment"
)

// Day is the deduplicated, deterministically ordered set of entries for
// one calendar date. It is rebuilt fresh on every run and never persisted
// on its own.
type Day struct {
	Date    time.Time
	Entries []accomplishment.Entry
}

// ProjectGroup pairs a project name with its entries, in appearance order.
type ProjectGroup struct {
	Project string
	Entries []accomplishment.Entry
}

// ForDate filters entries down to the target calendar date, removes
// duplicates by normalized (project, text), and orders the result by
// project name then by original appearance within each project's log.
//
// Dates are compared as calendar values; no timezone normalization is
// applied beyond the midnight normalization done at parse time.
func ForDate(entries []accomplishment.Entry, target time.Time) Day {
	target = accomplishment.NormalizeDate(target)

	seen := make(map[string]bool)
	var kept []accomplishment.Entry
	for _, e := range entries {
		if !e.Date.Equal(target) {
			continue
		}
		key := e.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, e)
	}

	// Stable sort preserves appearance order within a project.
	sort.SliceStable(kept, func(i, j int) bool {
		return strings.ToLower(kept[i].Project) < strings.ToLower(kept[j].Project)
	})

	return Day{Date: target, Entries: kept}
}

// Groups returns the day's entries grouped by project, preserving order.
func (d Day) Groups() []ProjectGroup {
	var groups []ProjectGroup
	for _, e := range d.Entries {
		if n := len(groups); n > 0 && groups[n-1].Project == e.Project {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, ProjectGroup{Project: e.Project, Entries: []accomplishment.Entry{e}})
	}
	return groups
}

// Empty reports whether the day has no entries.
func (d Day) Empty() bool {
	return len(d.Entries) == 0
}
