package core

type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// LevelFromVerbosity maps the -v count to a level.
func LevelFromVerbosity(v int) LogLevel {
	switch {
	case v >= 2:
		return LevelTrace
	case v == 1:
		return LevelDebug
	default:
		return LevelInfo
	}
}

type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	SetLevel(level LogLevel)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Trace(string, ...any) {}
func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }
func (NopLogger) SetLevel(LogLevel)    {}
