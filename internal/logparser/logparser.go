// Package logparser turns raw log text into structured LogRecord values.
// Parsing is total: malformed lines degrade to default fields, they never
// produce errors.
package logparser

import (
	"io"
	"regexp"
	"strings"

	"loglens/internal/dateutils"
	"loglens/internal/fileutils"
	"loglens/internal/logging"
	"loglens/internal/models"
)

var (
	levelPattern = regexp.MustCompile(`(?i)\b(ERROR|WARN|INFO|DEBUG)\b`)

	// A bare number or bare fractional-second token left over right after
	// the timestamp is stripped, e.g. the ".123" of "12:00:00 .123".
	fragmentPattern = regexp.MustCompile(`^\.?\d+(\s|$)`)

	tagColonPattern = regexp.MustCompile(`^([^:\n]{1,50}):`)
	tagBracePattern = regexp.MustCompile(`^([^:{\n]{1,50})\{`)
	tagTokenPattern = regexp.MustCompile(`[^\s{}:]+`)
)

// ParseLine parses a single trimmed log line into a LogRecord. It never
// fails: a line with no recognizable timestamp, level or tag still yields a
// record with the documented defaults.
func ParseLine(line string) models.LogRecord {
	timestamp, matched := dateutils.ExtractTimestamp(line)

	level := models.LevelInfo
	if m := levelPattern.FindString(line); m != "" {
		level = models.ParseLogLevel(m)
	}

	return models.LogRecord{
		Timestamp: timestamp,
		Level:     level,
		Tag:       extractTag(line, matched),
		Message:   line,
	}
}

// extractTag pulls a short label out of the line prefix, after removing the
// timestamp substring and any stray numeric fragments that followed it.
func extractTag(line, timestampMatch string) string {
	remainder := line
	if timestampMatch != "" {
		remainder = strings.Replace(remainder, timestampMatch, "", 1)
	}
	remainder = strings.TrimSpace(remainder)
	for {
		loc := fragmentPattern.FindStringIndex(remainder)
		if loc == nil {
			break
		}
		remainder = strings.TrimSpace(remainder[loc[1]:])
	}

	var tag string
	switch {
	case tagColonPattern.MatchString(remainder):
		tag = tagColonPattern.FindStringSubmatch(remainder)[1]
	case tagBracePattern.MatchString(remainder):
		tag = tagBracePattern.FindStringSubmatch(remainder)[1]
	default:
		tag = tagTokenPattern.FindString(remainder)
	}

	tag = strings.TrimSpace(tag)
	if len(tag) > models.MaxTagLength {
		tag = tag[:models.MaxTagLength]
	}
	return tag
}

// Parse reads the whole input, splits it into trimmed non-empty lines and
// parses each one. Record order matches input order. The only possible error
// is a read failure; content never fails.
func Parse(r io.Reader, logger logging.Logger) ([]models.LogRecord, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	lines, err := fileutils.ReadLines(r)
	if err != nil {
		return nil, err
	}

	records := make([]models.LogRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, ParseLine(line))
	}

	logger.Debug("Parsed log input",
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return records, nil
}

// ParseText parses an in-memory blob, e.g. pasted text.
func ParseText(text string, logger logging.Logger) []models.LogRecord {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	lines := fileutils.SplitLines(text)
	records := make([]models.LogRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, ParseLine(line))
	}

	logger.Debug("Parsed log text",
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return records
}

// ValidateFormat reports whether the input contains at least one non-blank
// line. Any text is parseable; only an empty blob is rejected upstream.
func ValidateFormat(r io.Reader) (bool, error) {
	lines, err := fileutils.ReadLines(r)
	if err != nil {
		return false, err
	}
	return len(lines) > 0, nil
}
