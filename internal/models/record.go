// Package models defines the core data structures shared by the parsing
// and correlation packages.
package models

import (
	"strings"
	"time"
)

// LogLevel is the severity parsed out of a log line.
type LogLevel string

const (
	LevelError LogLevel = "ERROR"
	LevelWarn  LogLevel = "WARN"
	LevelInfo  LogLevel = "INFO"
	LevelDebug LogLevel = "DEBUG"
)

// ParseLogLevel maps a level token to a LogLevel. Unknown tokens map to
// LevelInfo, mirroring the parser's default.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError
	case "WARN":
		return LevelWarn
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// MaxTagLength bounds the extracted tag.
const MaxTagLength = 50

// LogRecord represents a single parsed log line. Records are created once
// per input line and never mutated afterwards.
type LogRecord struct {
	// Timestamp is the first date-time found in the line. The zero value
	// means no timestamp could be parsed; callers substitute an
	// ingestion-time default for sorting only, never for business time.
	Timestamp time.Time `json:"timestamp" csv:"timestamp"`

	// Level defaults to LevelInfo when the line carries no level token.
	Level LogLevel `json:"level" csv:"level"`

	// Tag is a short label extracted from the line prefix. May be empty.
	// Never longer than MaxTagLength after trimming.
	Tag string `json:"tag" csv:"tag"`

	// Message is the full original line, used both for display and for
	// re-scanning by the extractor and classifiers.
	Message string `json:"message" csv:"message"`
}

// HasTimestamp reports whether a timestamp was parsed out of the line.
func (r LogRecord) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}
