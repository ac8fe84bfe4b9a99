package interfaces

import "context"

// Logger is the leveled, key/value logging contract used across the
// mini-site services. It matches github.com/goliatone/go-logger so a host
// can plug that logger in directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithFields(fields map[string]any) Logger
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers, one per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}
