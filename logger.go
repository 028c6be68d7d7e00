package eventhook

// Logger defines the interface hooks, subjects and watchers log through.
// It uses variadic key-value pairs:
//
//	logger.Debug("Event recorded", "event", "Clicked", "call", 3)
//
// This is compatible with slog, zerolog (see the logging package), zap and
// testing.TB based loggers (see the hooktest package).
type Logger interface {
	// Info logs an informational message with optional key-value pairs.
	Info(msg string, args ...any)

	// Error logs an error message with optional key-value pairs.
	Error(msg string, args ...any)

	// Warn logs a warning message with optional key-value pairs.
	// Used for failed inline predicates and wait timeouts.
	Warn(msg string, args ...any)

	// Debug logs a debug message with optional key-value pairs.
	// Used for hook attachment, recorded notifications and wait resolution.
	Debug(msg string, args ...any)
}

// NopLogger discards everything. It is the default logger of hooks and subjects.
type NopLogger struct{}

func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Debug(string, ...any) {}

func loggerOrNop(logger Logger) Logger {
	if logger == nil {
		return NopLogger{}
	}
	return logger
}
