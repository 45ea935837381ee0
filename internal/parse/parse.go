// Package parse extracts dated accomplishment entries from a project log's
// markdown content.
//
// Logs are free-form markdown with no enforced schema, so parsing is a
// tolerant grammar: a fixed set of accepted section headings, a fixed
// bullet-line pattern, and a best-effort date extractor that excludes
// lines it cannot read rather than failing.
package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/digest-dev/digestctl/internal/accomplishment"
)

// DefaultHeadings are the section headings recognized when the
// configuration does not override them.
var DefaultHeadings = []string{"Recent Accomplishments", "Accomplishments"}

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	bulletRe  = regexp.MustCompile(`^\s*[-*+]\s+(.+)$`)

	// Accepted date token forms at the start of bullet content:
	//   2025-01-21: text      2025-01-21 text
	//   **2025-01-21**: text  **2025-01-21** text
	dateRes = []*regexp.Regexp{
		regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}):?\s*(.*)$`),
		regexp.MustCompile(`^\*\*(\d{4}-\d{2}-\d{2})\*\*:?\s*(.*)$`),
	}
)

// logMeta is the front-matter subset a source log may carry.
type logMeta struct {
	Project string `yaml:"project"`
}

// Result holds the outcome of parsing one source log.
type Result struct {
	// Entries are the dated accomplishments found, in document order.
	Entries []accomplishment.Entry

	// Skipped counts bullet lines inside the accomplishment section that
	// were excluded: no parseable date token, or empty text after
	// stripping. Diagnostic only.
	Skipped int
}

// Document parses one source log's raw content. The project name comes
// from the log's directory; a `project:` front-matter key overrides it.
// A log with no recognized heading yields an empty result, not an error.
func Document(data []byte, project string, headings []string) Result {
	if len(headings) == 0 {
		headings = DefaultHeadings
	}

	var meta logMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		// Malformed front matter is treated as ordinary content.
		body = data
	}
	if meta.Project != "" {
		project = meta.Project
	}

	section := locateSection(body, headings)
	if section == "" {
		return Result{}
	}

	var res Result
	scanner := bufio.NewScanner(strings.NewReader(section))
	for scanner.Scan() {
		m := bulletRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		date, text, ok := extractDate(m[1])
		if !ok || text == "" {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, accomplishment.Entry{
			Date:    date,
			Project: project,
			Text:    text,
		})
	}
	return res
}

// locateSection returns the text between the first heading matching one of
// the accepted texts (case-insensitive) and the next heading of equal or
// higher level, or end of document. Returns "" if no heading matches.
func locateSection(body []byte, headings []string) string {
	accepted := make(map[string]bool, len(headings))
	for _, h := range headings {
		accepted[strings.ToLower(h)] = true
	}

	var b strings.Builder
	level := 0
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		m := headingRe.FindStringSubmatch(line)
		if m != nil {
			if level > 0 && len(m[1]) <= level {
				break
			}
			if level == 0 && accepted[strings.ToLower(strings.TrimSpace(m[2]))] {
				level = len(m[1])
			}
			continue
		}
		if level > 0 {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	if level == 0 {
		return ""
	}
	return b.String()
}

// extractDate pulls a leading date token out of bullet content. The token
// must parse as a real calendar date; 2025-13-01 is not a date, so the
// line is prose and excluded.
func extractDate(content string) (time.Time, string, bool) {
	for _, re := range dateRes {
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		d, err := time.ParseInLocation("2006-01-02", m[1], time.Local)
		if err != nil {
			return time.Time{}, "", false
		}
		return accomplishment.NormalizeDate(d), strings.TrimSpace(m[2]), true
	}
	return time.Time{}, "", false
}
