// Package web serves the course catalog as a JSON API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/coursecatalog/internal/config"
	"github.com/JonMunkholm/coursecatalog/internal/core"
	"github.com/JonMunkholm/coursecatalog/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// SnapshotReader reads catalog loads kept by the snapshot store.
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context, loadID uuid.UUID) ([]core.Course, error)
	LatestLoadID(ctx context.Context) (uuid.UUID, error)
}

// Option configures a Server.
type Option func(*Server)

// WithSnapshots serves stored loads under /api/snapshots.
func WithSnapshots(r SnapshotReader) Option {
	return func(s *Server) { s.snapshots = r }
}

// Server is the HTTP server for the catalog API.
type Server struct {
	catalog *core.Catalog
	path    string // file reloaded by POST /api/reload
	cfg     config.ServerConfig
	router  *chi.Mux
	server  *http.Server

	snapshots SnapshotReader // nil without a database
}

// NewServer creates a Server over catalog. path is the file the reload
// endpoint reads.
func NewServer(catalog *core.Catalog, path string, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		catalog: catalog,
		path:    path,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.RequestTimeout))
	}
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/courses", s.handleListCourses)
		r.Get("/courses/{courseID}", s.handleGetCourse)
		r.Post("/courses", s.handleAddCourse)
		r.Post("/courses/{courseID}", s.handleUpdateCourse)
		r.Delete("/courses/{courseID}", s.handleRemoveCourse)

		r.Post("/reload", s.handleReload)
		r.Post("/save", s.handleSave)
		r.Get("/export", s.handleExport)

		if s.snapshots != nil {
			r.Get("/snapshots/latest", s.handleLatestSnapshot)
			r.Get("/snapshots/{loadID}", s.handleGetSnapshot)
		}
	})
}

// Start begins listening for HTTP requests. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	slog.Info("server starting", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// elapsedMillis reports a duration in fractional milliseconds for JSON bodies.
func elapsedMillis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
