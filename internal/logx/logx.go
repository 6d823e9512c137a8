// Package logx provides the structured logger used throughout the
// core, a thin adapter over zerolog matching the field-builder shape
// of a conventional internal logger package.
package logx

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Field is one structured key/value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field   { return Field{key, value} }
func Int(key string, value int) Field  { return Field{key, value} }
func Int64(key string, v int64) Field  { return Field{key, v} }
func Float64(key string, v float64) Field {
	return Field{key, v}
}
func Bool(key string, v bool) Field         { return Field{key, v} }
func Duration(key string, d time.Duration) Field { return Field{key, d} }
func ErrField(err error) Field               { return Field{"error", err} }
func Any(key string, v interface{}) Field    { return Field{key, v} }

// Logger is the interface the rest of the core depends on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
}

// ZeroLogger wraps zerolog.Logger to satisfy Logger.
type ZeroLogger struct {
	logger zerolog.Logger
}

// Config controls how a logger is constructed.
type Config struct {
	Level  string // debug|info|warn|error
	Format string // json|console
	Output io.Writer
}

// New builds a ZeroLogger from cfg. A zero-value Config yields an
// info-level JSON logger writing to stderr.
func New(cfg Config) *ZeroLogger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level := parseLevel(cfg.Level)
	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &ZeroLogger{logger: l}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		lvl, err := zerolog.ParseLevel(s)
		if err != nil {
			return zerolog.InfoLevel
		}
		return lvl
	}
}

func (z *ZeroLogger) apply(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		ev = addField(ev, f)
	}
	return ev
}

func addField(ev *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return ev.Str(f.Key, v)
	case int:
		return ev.Int(f.Key, v)
	case int64:
		return ev.Int64(f.Key, v)
	case float64:
		return ev.Float64(f.Key, v)
	case bool:
		return ev.Bool(f.Key, v)
	case time.Duration:
		return ev.Dur(f.Key, v)
	case error:
		return ev.AnErr(f.Key, v)
	default:
		return ev.Interface(f.Key, v)
	}
}

func (z *ZeroLogger) Debug(msg string, fields ...Field) {
	z.apply(z.logger.Debug(), fields).Msg(msg)
}
func (z *ZeroLogger) Info(msg string, fields ...Field) {
	z.apply(z.logger.Info(), fields).Msg(msg)
}
func (z *ZeroLogger) Warn(msg string, fields ...Field) {
	z.apply(z.logger.Warn(), fields).Msg(msg)
}
func (z *ZeroLogger) Error(msg string, fields ...Field) {
	z.apply(z.logger.Error(), fields).Msg(msg)
}

// WithFields returns a child logger with the given fields bound to its
// context, so every subsequent call carries them.
func (z *ZeroLogger) WithFields(fields ...Field) Logger {
	ctx := z.logger.With()
	for _, f := range fields {
		ctx = addCtxField(ctx, f)
	}
	return &ZeroLogger{logger: ctx.Logger()}
}

func addCtxField(ctx zerolog.Context, f Field) zerolog.Context {
	switch v := f.Value.(type) {
	case string:
		return ctx.Str(f.Key, v)
	case int:
		return ctx.Int(f.Key, v)
	case int64:
		return ctx.Int64(f.Key, v)
	case float64:
		return ctx.Float64(f.Key, v)
	case bool:
		return ctx.Bool(f.Key, v)
	case time.Duration:
		return ctx.Dur(f.Key, v)
	case error:
		return ctx.AnErr(f.Key, v)
	default:
		return ctx.Interface(f.Key, v)
	}
}

var (
	defaultOnce sync.Once
	defaultLog  *ZeroLogger
)

// Get returns the process-wide default logger, initializing it with an
// info-level JSON configuration on first use.
func Get() Logger {
	defaultOnce.Do(func() {
		defaultLog = New(Config{})
	})
	return defaultLog
}

// Init replaces the process-wide default logger. Intended to be called
// once at startup before Get is used elsewhere.
func Init(cfg Config) {
	l := New(cfg)
	defaultOnce.Do(func() {})
	defaultLog = l
}
