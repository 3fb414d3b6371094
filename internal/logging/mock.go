package logging

// MockLogger captures log entries for verification in tests.
type MockLogger struct {
	Entries []LogEntry

	pendingFields []Field
	pendingError  error
}

// LogEntry is a single message captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, m.pendingFields...), fields...)
	m.Entries = append(m.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

// Debug records a debug-level message.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info records an info-level message.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn records a warning-level message.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error records an error-level message.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// WithField returns a logger with a field attached to every message.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return &MockLogger{
		Entries:       m.Entries,
		pendingFields: append(append([]Field{}, m.pendingFields...), Field{Key: key, Value: value}),
		pendingError:  m.pendingError,
	}
}

// WithError returns a logger with an error field attached.
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{
		Entries:       m.Entries,
		pendingFields: m.pendingFields,
		pendingError:  err,
	}
}

var _ Logger = (*MockLogger)(nil)
