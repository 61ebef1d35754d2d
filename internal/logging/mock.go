package logging

// MockLogger captures log entries for verification in tests.
// Loggers derived via WithError/WithField share the same capture buffer.
type MockLogger struct {
	entries      *[]CapturedEntry
	pendingError error
	pendingField *Field
}

// CapturedEntry is a single log call recorded by MockLogger.
type CapturedEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger returns a MockLogger with an empty capture buffer.
func NewMockLogger() *MockLogger {
	entries := make([]CapturedEntry, 0)
	return &MockLogger{entries: &entries}
}

// Entries returns all captured log calls, including those made through
// derived loggers.
func (m *MockLogger) Entries() []CapturedEntry {
	return *m.entries
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := fields
	if m.pendingField != nil {
		all = append([]Field{*m.pendingField}, fields...)
	}
	*m.entries = append(*m.entries, CapturedEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{entries: m.entries, pendingError: err, pendingField: m.pendingField}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	f := Field{Key: key, Value: value}
	return &MockLogger{entries: m.entries, pendingError: m.pendingError, pendingField: &f}
}

// Fatal records the entry instead of exiting, so tests can assert on it.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

func (m *MockLogger) Fatalf(format string, args ...interface{}) {
	m.record("FATAL", format, nil)
}

// HasMessage reports whether any captured entry carries the given message.
func (m *MockLogger) HasMessage(msg string) bool {
	for _, e := range m.Entries() {
		if e.Message == msg {
			return true
		}
	}
	return false
}
