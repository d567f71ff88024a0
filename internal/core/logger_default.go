package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// DefaultLogger prints human-readable lines through pterm and, when a file
// sink is given, mirrors every record as JSON through zerolog.
type DefaultLogger struct {
	level  LogLevel
	output io.Writer
	file   zerolog.Logger
	fields []any
}

func NewDefaultLogger(output io.Writer, sink io.Writer, level LogLevel) *DefaultLogger {
	file := zerolog.Nop()
	if sink != nil {
		file = zerolog.New(sink).With().Timestamp().Logger().Level(zerolog.TraceLevel)
	}
	return &DefaultLogger{
		level:  level,
		output: output,
		file:   file,
	}
}

func (l *DefaultLogger) Trace(msg string, args ...any) {
	l.log(LevelTrace, pterm.Debug, "TRACE: "+msg, args)
}

func (l *DefaultLogger) Debug(msg string, args ...any) {
	l.log(LevelDebug, pterm.Debug, msg, args)
}

func (l *DefaultLogger) Info(msg string, args ...any) {
	l.log(LevelInfo, pterm.Info, msg, args)
}

func (l *DefaultLogger) Warn(msg string, args ...any) {
	l.log(LevelWarn, pterm.Warning, msg, args)
}

func (l *DefaultLogger) Error(msg string, args ...any) {
	l.log(LevelError, pterm.Error, msg, args)
}

func (l *DefaultLogger) With(args ...any) Logger {
	return &DefaultLogger{
		level:  l.level,
		output: l.output,
		file:   l.file,
		fields: append(append([]any{}, l.fields...), args...),
	}
}

func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *DefaultLogger) log(level LogLevel, printer pterm.PrefixPrinter, msg string, args []any) {
	all := append(append([]any{}, l.fields...), args...)

	// The file sink records everything; the level only gates the console.
	l.file.WithLevel(zerologLevel(level)).Fields(all).Msg(msg)

	if l.level > level {
		return
	}
	if kv := formatArgs(args); kv != "" {
		msg = msg + " " + kv
	}
	printer.WithWriter(l.output).Println(msg)
}

func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LevelTrace:
		return zerolog.TraceLevel
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func formatArgs(args []any) string {
	var parts []string
	for i := 0; i+1 < len(args); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%v", args[i], args[i+1]))
	}
	return strings.Join(parts, " ")
}
