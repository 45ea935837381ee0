// Package accomplishment provides the Entry data structure for dated
// accomplishment records extracted from project logs.
package accomplishment

import (
	"strings"
	"time"
)

// Entry represents one dated accomplishment extracted from a project log.
// Entries are value types; once parsed they are never mutated.
type Entry struct {
	// Date is the calendar date the accomplishment was logged for,
	// normalized to midnight local time.
	Date time.Time

	// Project is the human-readable project name, taken from the
	// directory containing the source log (or its front-matter override).
	Project string

	// Text is the bullet content with the bullet marker and date token
	// stripped and surrounding whitespace trimmed. Always non-empty.
	Text string
}

// NormalizeDate normalizes a time.Time to midnight local time so that
// entries logged at different times of day compare equal by date.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// DedupKey returns the canonical identity of an entry for deduplication.
// Two entries with the same project and text are the same logical fact,
// ignoring case and internal whitespace differences.
func (e Entry) DedupKey() string {
	return normalize(e.Project) + "\x00" + normalize(e.Text)
}

// normalize lowercases s and collapses runs of whitespace to single spaces.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
