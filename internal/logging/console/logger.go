package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/pkg/interfaces"
)

// Level is the severity of an entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

// ParseLevel maps a config value such as "warn" to a Level. Unknown values
// fall back to LevelInfo and report false.
func ParseLevel(raw string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	default:
		return LevelInfo, false
	}
}

// Options configures the provider. Zero values write DEBUG and above to stdout.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

type sink struct {
	mu       sync.Mutex
	writer   io.Writer
	clock    func() time.Time
	minLevel Level
}

func (s *sink) write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.writer, line+"\n")
}

// NewProvider returns a provider writing one line per entry:
// "<rfc3339 ts> <LEVEL> <msg> key=value ..." with keys sorted.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{writer: opts.Writer, clock: opts.TimeFunc, minLevel: LevelDebug}
	if s.writer == nil {
		s.writer = os.Stdout
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if opts.MinLevel != nil {
		s.minLevel = *opts.MinLevel
	}
	return providerFunc(func(name string) interfaces.Logger {
		return &logger{sink: s, fields: map[string]any{"logger": name}}
	})
}

type providerFunc func(name string) interfaces.Logger

func (f providerFunc) GetLogger(name string) interfaces.Logger { return f(name) }

type logger struct {
	sink   *sink
	fields map[string]any
	ctx    context.Context
}

var _ interfaces.Logger = (*logger)(nil)

func (l *logger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return &logger{sink: l.sink, fields: merged, ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{sink: l.sink, fields: l.fields, ctx: ctx}
}

func (l *logger) emit(level Level, msg string, args []any) {
	if l.sink == nil || level < l.sink.minLevel {
		return
	}
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	maps.Copy(fields, logging.ContextFields(l.ctx))
	appendArgs(fields, args)
	l.sink.write(formatEntry(l.sink.clock().UTC(), level, msg, fields))
}

// appendArgs reads args as key/value pairs. Non-string keys and a trailing
// value without a key are stored under positional "arg_N" keys.
func appendArgs(fields map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields[positional(i)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = positional(i)
		}
		fields[key] = args[i+1]
	}
}

func positional(i int) string {
	return "arg_" + strconv.Itoa(i/2)
}

func formatEntry(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	return b.String()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return quote(v.UTC().Format(time.RFC3339Nano))
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.IndexFunc(value, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) >= 0 {
		return strconv.Quote(value)
	}
	return value
}
