// Package journal upserts the aggregated accomplishments into the target
// daily note. The note is external and human-owned except for one managed
// region delimited by sentinel comment lines; everything outside that
// region is preserved byte-for-byte.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/digest-dev/digestctl/internal/aggregate"
)

// Sentinel marker lines delimiting the managed region. HTML comments
// rather than headings, so a human-authored "Development Work" heading
// can never be mistaken for the region boundary.
const (
	BeginMarker = "<!-- digestctl:begin -->"
	EndMarker   = "<!-- digestctl:end -->"
)

// EmptyBody is rendered when a run finds no accomplishments, so the note
// itself records "ran and found nothing" rather than looking untouched.
const EmptyBody = "_No accomplishments recorded._"

// ErrWrite indicates the target note could not be written. The
// pre-existing note, if any, is left untouched.
var ErrWrite = errors.New("journal write")

// Result describes what an upsert did to the target note.
type Result struct {
	// Path is the absolute path of the note that was written.
	Path string

	// Created is true when the note did not exist before this run.
	Created bool

	// Changed is true when the written content differs from what was on
	// disk before the run.
	Changed bool
}

// RenderBody renders the managed-region body for an aggregated day: one
// wikilinked subheading per project followed by its entries as bullets,
// in aggregation order.
func RenderBody(day aggregate.Day) string {
	groups := day.Groups()
	if len(groups) == 0 {
		return EmptyBody
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### [[%s]]\n\n", g.Project)
		for _, e := range g.Entries {
			fmt.Fprintf(&b, "- %s\n", e.Text)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// region assembles the full managed region, markers included.
func region(body string) string {
	return BeginMarker + "\n## Development Work\n\n" + body + "\n" + EndMarker
}

// Splice replaces the managed region of existing note content with a
// freshly rendered body, preserving everything else verbatim.
//
// If the content holds a marker pair, only the span between the first
// begin marker and the first end marker after it is replaced. Any later
// marker pairs are ordinary content and survive untouched. If no pair is
// present the region is appended at the end.
func Splice(existing, body string) string {
	reg := region(body)

	begin := strings.Index(existing, BeginMarker)
	if begin >= 0 {
		rest := existing[begin+len(BeginMarker):]
		end := strings.Index(rest, EndMarker)
		if end >= 0 {
			suffix := rest[end+len(EndMarker):]
			return existing[:begin] + reg + suffix
		}
	}

	if existing != "" && !strings.HasSuffix(existing, "\n") {
		existing += "\n"
	}
	return existing + "\n" + reg + "\n"
}

// scaffold is the initial content for a note that does not exist yet.
func scaffold(date time.Time, body string) string {
	title := fmt.Sprintf("# %s - %s", date.Format("2006-01-02"), date.Weekday())
	return title + "\n\n" + region(body) + "\n"
}

// Compose returns the note content an upsert would produce for the note
// at path, without writing anything. created reports whether the note
// does not exist yet.
func Compose(path string, day aggregate.Day) (content string, created bool, err error) {
	body := RenderBody(day)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		return Splice(string(existing), body), false, nil
	case os.IsNotExist(err):
		return scaffold(day.Date, body), true, nil
	default:
		return "", false, fmt.Errorf("%w: reading %s: %v", ErrWrite, path, err)
	}
}

// Upsert writes the aggregated day into the note at path, creating it if
// needed. The write is atomic: content goes to a temp file in the note's
// directory which is renamed over the target, so readers never observe a
// partial note and a failed run leaves the previous note intact.
func Upsert(path string, day aggregate.Day) (Result, error) {
	existing, readErr := os.ReadFile(path)

	content, created, err := Compose(path, day)
	if err != nil {
		return Result{}, err
	}

	if err := atomicWrite(path, []byte(content)); err != nil {
		return Result{}, err
	}
	return Result{
		Path:    path,
		Created: created,
		Changed: readErr != nil || content != string(existing),
	}, nil
}

// atomicWrite writes data to a temp file then renames it over path.
// The temp file is removed on every failure path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", ErrWrite, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", ErrWrite, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", ErrWrite, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", ErrWrite, err)
	}

	return nil
}
