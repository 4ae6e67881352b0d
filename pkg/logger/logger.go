package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vanlang/stock-api/pkg/config"
)

// ServiceName is attached to every log line
const ServiceName = "stock-api"

// Fields is a set of structured log fields
type Fields map[string]interface{}

type requestIDKey struct{}

// Logger is a structured logger wrapper around zerolog
// ⭐ SSOT: every log line goes through this package
type Logger struct {
	zlog zerolog.Logger
}

// New builds the process logger: JSON on stdout unless LOG_FORMAT asks for
// the console writer. Sets the global level from LOG_LEVEL.
func New(cfg *config.Config) *Logger {
	var out io.Writer = os.Stdout
	switch cfg.LogFormat {
	case "console", "pretty":
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	zerolog.SetGlobalLevel(parseLogLevel(cfg.LogLevel))
	return NewWithWriter(out, cfg.Env)
}

// NewWithWriter builds a JSON logger on an arbitrary writer.
// The global level is left untouched.
func NewWithWriter(w io.Writer, env string) *Logger {
	return &Logger{zlog: zerolog.New(w).With().
		Timestamp().
		Str("service", ServiceName).
		Str("env", env).
		Logger()}
}

// Nop discards everything; for tests and CLI commands that print their own
// output
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// parseLogLevel accepts zerolog's names plus "warning"; anything else is info
func parseLogLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Debug(msg string) { l.zlog.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zlog.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zlog.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zlog.Error().Msg(msg) }

// WithField returns a new logger with an additional field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{zlog: l.zlog.With().Interface(key, value).Logger()}
}

// WithFields returns a new logger with multiple fields
func (l *Logger) WithFields(fields Fields) *Logger {
	ctx := l.zlog.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zlog: ctx.Logger()}
}

// WithError returns a new logger with an error field
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zlog: l.zlog.With().Err(err).Logger()}
}

// WithUpstream tags a logger with the fields every upstream failure and
// fallback must carry. Empty values are skipped.
func (l *Logger) WithUpstream(source, symbol, strategy string) *Logger {
	ctx := l.zlog.With()
	if source != "" {
		ctx = ctx.Str("source", source)
	}
	if symbol != "" {
		ctx = ctx.Str("symbol", symbol)
	}
	if strategy != "" {
		ctx = ctx.Str("strategy", strategy)
	}
	return &Logger{zlog: ctx.Logger()}
}

// ContextWithRequestID stores the HTTP request id for WithContext
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by ContextWithRequestID, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithContext tags the logger with the request id carried by ctx, if any
func (l *Logger) WithContext(ctx context.Context) *Logger {
	id := RequestID(ctx)
	if id == "" {
		return l
	}
	return &Logger{zlog: l.zlog.With().Str("request_id", id).Logger()}
}
