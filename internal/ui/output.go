package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/digest-dev/digestctl/internal/aggregate"
	"github.com/digest-dev/digestctl/internal/history"
	"github.com/digest-dev/digestctl/internal/pipeline"
	"github.com/digest-dev/digestctl/internal/scan"
)

// FormatRun formats the outcome of a completed pipeline run.
func FormatRun(w io.Writer, res pipeline.Result) {
	verb := "Updated"
	if res.Note.Created {
		verb = "Created"
	} else if !res.Note.Changed {
		verb = "No changes to"
	}
	fmt.Fprintf(w, "%s daily note: %s\n", verb, res.Note.Path)
	fmt.Fprintf(w, "%d project(s) scanned, %d accomplishment(s) for %s\n",
		len(res.Sources), len(res.Day.Entries), res.Day.Date.Format("2006-01-02"))
	if res.Skipped > 0 {
		fmt.Fprintf(w, "%d undated bullet(s) skipped\n", res.Skipped)
	}
}

// FormatWarnings writes discovery warnings, one per line.
func FormatWarnings(w io.Writer, warnings []scan.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}

// FormatDay formats an aggregated day as a grouped plain-text listing.
func FormatDay(w io.Writer, day aggregate.Day) {
	if day.Empty() {
		fmt.Fprintf(w, "No accomplishments found for %s.\n", day.Date.Format("2006-01-02"))
		return
	}
	for i, g := range day.Groups() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", g.Project)
		for _, e := range g.Entries {
			fmt.Fprintf(w, "  - %s\n", e.Text)
		}
	}
}

// FormatRunList formats recorded runs as a table, newest first.
func FormatRunList(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %s  %d project(s)  %d entry(s)  %s\n",
			r.ID,
			r.RanAt.Local().Format("2006-01-02 15:04"),
			r.Date.Format("2006-01-02"),
			r.Projects,
			r.Entries,
			r.NoteAction,
		)
	}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EntryJSON is the JSON representation of one accomplishment.
type EntryJSON struct {
	Date    string `json:"date"`
	Project string `json:"project"`
	Text    string `json:"content"`
}

// DayJSON is the JSON representation of an aggregated day.
type DayJSON struct {
	Date    string      `json:"date"`
	Count   int         `json:"count"`
	Entries []EntryJSON `json:"entries"`
}

// BuildDayJSON converts an aggregated day to its JSON shape.
func BuildDayJSON(day aggregate.Day) DayJSON {
	entries := make([]EntryJSON, len(day.Entries))
	for i, e := range day.Entries {
		entries[i] = EntryJSON{
			Date:    e.Date.Format("2006-01-02"),
			Project: e.Project,
			Text:    e.Text,
		}
	}
	return DayJSON{
		Date:    day.Date.Format("2006-01-02"),
		Count:   len(day.Entries),
		Entries: entries,
	}
}
