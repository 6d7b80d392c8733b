// Package observability provides logging, metrics, and tracing.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the application logger: JSON in production, text
// elsewhere. wrap decorates the base handler, typically with the
// request-context handler from the middleware package.
func NewLogger(w io.Writer, env string, wrap func(slog.Handler) slog.Handler) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if env == "production" || env == "prod" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	if wrap != nil {
		handler = wrap(handler)
	}
	return slog.New(handler)
}

// InitLogging installs the application logger as the slog default.
func InitLogging(env string, wrap func(slog.Handler) slog.Handler) *slog.Logger {
	logger := NewLogger(os.Stdout, env, wrap)
	slog.SetDefault(logger)
	return logger
}
