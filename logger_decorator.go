package eventhook

import (
	"strings"
)

// LoggerDecorator defines the interface for decorating loggers.
type LoggerDecorator interface {
	Logger

	// GetInnerLogger returns the wrapped logger
	GetInnerLogger() Logger
}

// BaseLoggerDecorator forwards all calls to the wrapped logger.
type BaseLoggerDecorator struct {
	inner Logger
}

// NewBaseLoggerDecorator creates a new base decorator wrapping the given logger.
func NewBaseLoggerDecorator(inner Logger) *BaseLoggerDecorator {
	return &BaseLoggerDecorator{inner: loggerOrNop(inner)}
}

// GetInnerLogger returns the wrapped logger
func (d *BaseLoggerDecorator) GetInnerLogger() Logger {
	return d.inner
}

func (d *BaseLoggerDecorator) Info(msg string, args ...any) {
	d.inner.Info(msg, args...)
}

func (d *BaseLoggerDecorator) Error(msg string, args ...any) {
	d.inner.Error(msg, args...)
}

func (d *BaseLoggerDecorator) Warn(msg string, args ...any) {
	d.inner.Warn(msg, args...)
}

func (d *BaseLoggerDecorator) Debug(msg string, args ...any) {
	d.inner.Debug(msg, args...)
}

// ValueInjectionLoggerDecorator prepends fixed key-value pairs to every log call.
// Hooks use it to stamp the event name and hook ID on their log lines.
type ValueInjectionLoggerDecorator struct {
	*BaseLoggerDecorator
	injectedArgs []any
}

// NewValueInjectionLoggerDecorator creates a decorator that automatically injects values into log events.
func NewValueInjectionLoggerDecorator(inner Logger, injectedArgs ...any) *ValueInjectionLoggerDecorator {
	return &ValueInjectionLoggerDecorator{
		BaseLoggerDecorator: NewBaseLoggerDecorator(inner),
		injectedArgs:        injectedArgs,
	}
}

func (d *ValueInjectionLoggerDecorator) combineArgs(originalArgs []any) []any {
	if len(d.injectedArgs) == 0 {
		return originalArgs
	}
	if len(originalArgs) == 0 {
		return d.injectedArgs
	}
	combined := make([]any, 0, len(d.injectedArgs)+len(originalArgs))
	combined = append(combined, d.injectedArgs...)
	combined = append(combined, originalArgs...)
	return combined
}

func (d *ValueInjectionLoggerDecorator) Info(msg string, args ...any) {
	d.inner.Info(msg, d.combineArgs(args)...)
}

func (d *ValueInjectionLoggerDecorator) Error(msg string, args ...any) {
	d.inner.Error(msg, d.combineArgs(args)...)
}

func (d *ValueInjectionLoggerDecorator) Warn(msg string, args ...any) {
	d.inner.Warn(msg, d.combineArgs(args)...)
}

func (d *ValueInjectionLoggerDecorator) Debug(msg string, args ...any) {
	d.inner.Debug(msg, d.combineArgs(args)...)
}

// PrefixLoggerDecorator prepends a prefix to every log message.
// Subjects use it to mark their log lines with their CloudEvent source.
type PrefixLoggerDecorator struct {
	*BaseLoggerDecorator
	prefix string
}

// NewPrefixLoggerDecorator creates a decorator that adds a prefix to log messages.
func NewPrefixLoggerDecorator(inner Logger, prefix string) *PrefixLoggerDecorator {
	return &PrefixLoggerDecorator{
		BaseLoggerDecorator: NewBaseLoggerDecorator(inner),
		prefix:              prefix,
	}
}

func (d *PrefixLoggerDecorator) formatMessage(msg string) string {
	if d.prefix == "" {
		return msg
	}
	var builder strings.Builder
	builder.Grow(len(d.prefix) + len(msg) + 1)
	builder.WriteString(d.prefix)
	builder.WriteString(" ")
	builder.WriteString(msg)
	return builder.String()
}

func (d *PrefixLoggerDecorator) Info(msg string, args ...any) {
	d.inner.Info(d.formatMessage(msg), args...)
}

func (d *PrefixLoggerDecorator) Error(msg string, args ...any) {
	d.inner.Error(d.formatMessage(msg), args...)
}

func (d *PrefixLoggerDecorator) Warn(msg string, args ...any) {
	d.inner.Warn(d.formatMessage(msg), args...)
}

func (d *PrefixLoggerDecorator) Debug(msg string, args ...any) {
	d.inner.Debug(d.formatMessage(msg), args...)
}
