// Package logging carries a *slog.Logger through context.Context, grounded
// on the teacher's internal/middleware logger-in-context accessor
// (middleware.GetLoggerFromCtx), generalized so the core never needs a
// concrete HTTP middleware to populate it.
package logging

import (
	"context"
	"log/slog"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Default is used when no logger has been attached to the context.
var Default = slog.New(slog.NewJSONHandler(noopWriter{}, nil))

// WithLogger returns a context carrying logger, retrievable with FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or a discarding default
// logger if none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return Default
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
