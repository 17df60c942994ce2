package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// default logger instance, replaced by Configure
var defaultLogger atomic.Pointer[slog.Logger]

// initializes the logger from ENVIRONMENT so packages can log before config is loaded
func init() {
	Configure(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))
}

// rebuilds the default logger: production gets JSON on stdout at info, everything else
// human-readable text on stderr at debug. level overrides the threshold when set.
func Configure(environment, level string) {
	var handler slog.Handler

	if environment == "production" {
		opts := &slog.HandlerOptions{Level: parseLevel(level, slog.LevelInfo)}
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts := &slog.HandlerOptions{Level: parseLevel(level, slog.LevelDebug)}
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger.Store(slog.New(handler).With("service", "zarasprite"))
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// returns the default logger instance
func Default() *slog.Logger {
	return defaultLogger.Load()
}

// creates a logger with additional context fields
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// returns the logger stored in ctx, or the default one
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Default()
	}

	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}

	return Default()
}

// adds logger to context
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

type loggerKey struct{}

func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// logs an error with its cause attached
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	Default().Error(msg, args...)
}

// logs a fatal error with error and exits (for CLI tools)
func FatalErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	Default().Error(msg, args...)
	os.Exit(1)
}
