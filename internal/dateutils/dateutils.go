// Package dateutils provides timestamp detection and parsing for log lines.
package dateutils

import (
	"regexp"
	"time"
)

// Layouts tried when parsing a detected timestamp, most specific first.
// Go's parser accepts a fractional-second suffix after the seconds field
// even when the layout does not spell one out.
var Layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// timestampPattern matches the canonical log timestamp: a date, optionally
// followed by a time with T or space separator and optional milliseconds.
var timestampPattern = regexp.MustCompile(
	`\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}:\d{2}(?:\.\d{1,3})?)?`)

// FindTimestamp returns the first canonical timestamp substring in line and
// its position, or ("", -1) when none is present.
func FindTimestamp(line string) (string, int) {
	loc := timestampPattern.FindStringIndex(line)
	if loc == nil {
		return "", -1
	}
	return line[loc[0]:loc[1]], loc[0]
}

// ParseTimestamp parses a timestamp string detected by FindTimestamp.
// Returns the zero time when no layout matches.
func ParseTimestamp(s string) time.Time {
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ExtractTimestamp finds and parses the first timestamp in line. The second
// return value is the matched substring, empty when nothing matched.
func ExtractTimestamp(line string) (time.Time, string) {
	match, pos := FindTimestamp(line)
	if pos < 0 {
		return time.Time{}, ""
	}
	return ParseTimestamp(match), match
}
