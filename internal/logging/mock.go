package logging

import (
	"fmt"
	"sync"
)

// MockLogger records entries in memory for test assertions. Child loggers
// created with WithField/WithError share the parent's record.
type MockLogger struct {
	rec           *record
	pendingError  error
	pendingFields []Field
}

type record struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{rec: &record{}}
}

func (m *MockLogger) add(level, msg string, fields []Field) {
	if m.rec == nil {
		m.rec = &record{}
	}
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)

	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.entries = append(m.rec.entries, LogEntry{Level: level, Message: msg, Fields: all, Error: m.pendingError})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.add("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.add("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.add("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.add("ERROR", msg, fields) }

// Fatal records the entry; the mock never exits.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.add("FATAL", msg, fields) }

func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.add("FATAL", fmt.Sprintf(msg, args...), nil)
}

func (m *MockLogger) WithError(err error) Logger {
	if m.rec == nil {
		m.rec = &record{}
	}
	return &MockLogger{rec: m.rec, pendingError: err, pendingFields: m.pendingFields}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	if m.rec == nil {
		m.rec = &record{}
	}
	all := append(append([]Field{}, m.pendingFields...), fields...)
	return &MockLogger{rec: m.rec, pendingError: m.pendingError, pendingFields: all}
}

// GetEntries returns a copy of everything logged so far.
func (m *MockLogger) GetEntries() []LogEntry {
	if m.rec == nil {
		return nil
	}
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	return append([]LogEntry(nil), m.rec.entries...)
}

// GetEntriesByLevel filters GetEntries by level ("DEBUG", "INFO", ...).
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.GetEntries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasEntry reports whether an entry with this level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, e := range m.GetEntries() {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}

// Clear drops all captured entries.
func (m *MockLogger) Clear() {
	if m.rec == nil {
		return
	}
	m.rec.mu.Lock()
	m.rec.entries = nil
	m.rec.mu.Unlock()
}
