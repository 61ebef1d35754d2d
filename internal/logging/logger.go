// Package logging provides a small structured-logging abstraction so the
// parsing and correlation packages stay decoupled from the concrete
// logging framework.
package logging

// Logger is the structured logging interface used across the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached.
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached.
	WithField(key string, value interface{}) Logger

	// Fatal logs a fatal-level message and exits the program.
	Fatal(msg string, fields ...Field)
	Fatalf(format string, args ...interface{})
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names used across the application's log output.
const (
	FieldFile     = "file_path"
	FieldCount    = "count"
	FieldSession  = "session_id"
	FieldLine     = "line"
	FieldKey      = "key"
	FieldBasis    = "match_basis"
	FieldStatus   = "status"
	FieldDuration = "duration_ms"
)
