// Package notepath maps a target date to a vault-relative daily note path.
package notepath

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultFormat mirrors the conventional Obsidian daily-note layout:
// one folder per year, one per month, dated note name.
const DefaultFormat = "Daily Notes/{year}/{month}-{month_name}/{year}-{month}-{day}"

// ErrUnknownField indicates the format template references a date field
// the resolver does not recognize. This is a configuration error; nothing
// is read or written once it is raised.
var ErrUnknownField = errors.New("unknown field in daily note format")

// Resolve substitutes date fields into the format template and returns the
// vault-relative note path, without the .md extension.
//
// Recognized fields: {year} (4 digits), {month} (2 digits), {day}
// (2 digits), {month_name} (English month name), {weekday} (English day
// name). Braces outside a recognized field are a configuration error.
func Resolve(date time.Time, format string) (string, error) {
	var b strings.Builder
	for {
		open := strings.IndexByte(format, '{')
		if open < 0 {
			b.WriteString(format)
			return b.String(), nil
		}
		b.WriteString(format[:open])
		format = format[open:]

		closing := strings.IndexByte(format, '}')
		if closing < 0 {
			return "", fmt.Errorf("%w: unterminated %q", ErrUnknownField, format)
		}
		field := format[1:closing]
		format = format[closing+1:]

		switch field {
		case "year":
			b.WriteString(date.Format("2006"))
		case "month":
			b.WriteString(date.Format("01"))
		case "day":
			b.WriteString(date.Format("02"))
		case "month_name":
			b.WriteString(date.Month().String())
		case "weekday":
			b.WriteString(date.Weekday().String())
		default:
			return "", fmt.Errorf("%w: {%s}", ErrUnknownField, field)
		}
	}
}
