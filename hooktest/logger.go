package hooktest

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/GoCodeAlone/eventhook"
)

// LogEntry is one call made to a TestLogger.
type LogEntry struct {
	Level   string
	Message string
	Args    []any
}

// TestLogger writes hook logs to the test output and keeps them for assertions.
type TestLogger struct {
	tb      testing.TB
	mu      sync.Mutex
	entries []LogEntry
}

var _ eventhook.Logger = (*TestLogger)(nil)

// NewTestLogger creates a logger writing through tb.Logf. A nil tb only records.
func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) Info(msg string, args ...any)  { l.log("info", msg, args) }
func (l *TestLogger) Error(msg string, args ...any) { l.log("error", msg, args) }
func (l *TestLogger) Warn(msg string, args ...any)  { l.log("warn", msg, args) }
func (l *TestLogger) Debug(msg string, args ...any) { l.log("debug", msg, args) }

func (l *TestLogger) log(level, msg string, args []any) {
	l.mu.Lock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Args: args})
	l.mu.Unlock()

	if l.tb != nil {
		l.tb.Helper()
		l.tb.Logf("[%s] %s%s", strings.ToUpper(level), msg, formatArgs(args))
	}
}

// Entries returns a copy of the recorded entries.
func (l *TestLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// FindEntry returns the first entry with the given level whose message contains message.
func (l *TestLogger) FindEntry(level, message string) *LogEntry {
	for _, entry := range l.Entries() {
		if entry.Level == level && strings.Contains(entry.Message, message) {
			return &entry
		}
	}
	return nil
}

// Arg returns the value logged under key, if any.
func (e LogEntry) Arg(key string) (any, bool) {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1], true
		}
	}
	return nil, false
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	return b.String()
}
