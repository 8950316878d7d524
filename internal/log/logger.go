package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/staffdesk/staffdesk/internal/errors"
)

// Logger provides structured logging with slog
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	default:
		handler = slog.NewTextHandler(config.Output.Writer(), opts)
	}

	base := slog.New(handler)
	if config.ServiceName != "" {
		base = base.With("service", config.ServiceName)
	}

	return &Logger{
		slog:   base,
		config: config,
	}
}

// Default creates a logger with default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// Discard creates a logger that drops everything. Used by tests and library callers
// that do not inject one.
func Discard() *Logger {
	cfg := DefaultConfig()
	cfg.Output = NewOutput(io.Discard)
	cfg.ServiceName = ""
	return New(cfg)
}

// With returns a new Logger with the given attributes added to all log entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// WithGroup returns a new Logger with a group name that prefixes all attributes
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{
		slog:   l.slog.WithGroup(name),
		config: l.config,
	}
}

// WithError adds error details to the logger.
// AppErrors contribute error_code and suggestions.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	if appErr, ok := errors.As(err); ok {
		return l.With(errorAttrs(appErr, "error")...)
	}

	return l.With("error", err.Error())
}

func errorAttrs(appErr *errors.AppError, messageKey string) []any {
	args := []any{
		messageKey, appErr.Message,
		"error_code", string(appErr.Code),
	}
	if len(appErr.Suggestions) > 0 {
		args = append(args, "suggestions", appErr.Suggestions)
	}
	if appErr.DocsURL != "" {
		args = append(args, "docs_url", appErr.DocsURL)
	}
	if appErr.Cause != nil {
		args = append(args, "cause", appErr.Cause.Error())
	}
	return args
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// DebugContext logs a debug message with context
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.slog.DebugContext(ctx, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// InfoContext logs an info message with context
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.slog.InfoContext(ctx, msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// WarnContext logs a warning message with context
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.slog.WarnContext(ctx, msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// ErrorContext logs an error message with context
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.slog.ErrorContext(ctx, msg, args...)
}

// LogError logs an error with full details
func (l *Logger) LogError(err error) {
	l.LogErrorContext(context.Background(), err)
}

// LogErrorContext logs an error with full details and context
func (l *Logger) LogErrorContext(ctx context.Context, err error) {
	if err == nil {
		return
	}

	if appErr, ok := errors.As(err); ok {
		l.ErrorContext(ctx, "operation failed", errorAttrs(appErr, "error_message")...)
		return
	}
	l.ErrorContext(ctx, "operation failed", "error", err.Error())
}

// Enabled returns whether the logger is enabled for the given level
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.slog.Enabled(ctx, level.ToSlogLevel())
}

// Handler returns the underlying slog.Handler
func (l *Logger) Handler() slog.Handler {
	return l.slog.Handler()
}

// Config returns the logger configuration
func (l *Logger) Config() Config {
	return l.config
}
