// Package logging adapts third-party structured loggers to eventhook.Logger.
package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologLogger writes eventhook log calls to a zerolog.Logger. Key-value
// pairs become zerolog fields; a dangling key is logged under "!BADKEY".
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerolog wraps zl.
func NewZerolog(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

// Nop returns a logger that never writes anything.
func Nop() *ZerologLogger {
	return &ZerologLogger{zl: zerolog.Nop()}
}

func (l *ZerologLogger) Info(msg string, args ...any) {
	write(l.zl.Info(), msg, args)
}

func (l *ZerologLogger) Error(msg string, args ...any) {
	write(l.zl.Error(), msg, args)
}

func (l *ZerologLogger) Warn(msg string, args ...any) {
	write(l.zl.Warn(), msg, args)
}

func (l *ZerologLogger) Debug(msg string, args ...any) {
	write(l.zl.Debug(), msg, args)
}

func write(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			e = e.Interface("!BADKEY", args[i])
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, isErr := args[i+1].(error); isErr {
			e = e.AnErr(key, err)
			continue
		}
		e = e.Interface(key, args[i+1])
	}
	e.Msg(msg)
}
