// Package logging provides structured logging configuration using log/slog.
//
// Loggers obtained through FromContext carry the chi request ID of an HTTP
// request and the ID of the catalog load pass in progress, so every entry
// for one request or one load can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const ctxKeyLoadID contextKey = "load_id"

// SetupWriter configures the global slog logger to write to w.
// The terminal menu owns stdout, so the entry point passes a log file.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func SetupWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithLoadID returns a context tagged with a catalog load ID.
func WithLoadID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyLoadID, id)
}

// LoadIDFromContext returns the load ID stored by WithLoadID, or "".
func LoadIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyLoadID).(string); ok {
		return v
	}
	return ""
}

// FromContext returns the default logger enriched with request_id and
// load_id when the context carries them.
//
// Usage:
//
//	func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.FromContext(r.Context())
//	    logger.Info("reloading catalog", "path", s.path)
//	}
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	// Chi's RequestID middleware stores the ID in context
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if loadID := LoadIDFromContext(ctx); loadID != "" {
		logger = logger.With("load_id", loadID)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
//
// Usage:
//
//	sortLogger := logging.WithFields(ctx, "algorithm", algo)
//	sortLogger.Info("sort started")
//	// ... later ...
//	sortLogger.Info("sort finished", "courses", n)
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
