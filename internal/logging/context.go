package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithFields attaches a child of the current logger that adds keyvals to
// every record, e.g. WithFields(ctx, FieldPath, path) for one file's work.
func WithFields(ctx context.Context, keyvals ...any) context.Context {
	if len(keyvals) == 0 {
		return WithLogger(ctx, FromContext(ctx))
	}
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
