// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: New opens the database, builds the
// repositories, services and handlers, and maps them onto routes. main.go
// only loads config and calls New and Start.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/student-records/internal/auth"
	"github.com/sakif/student-records/internal/config"
	"github.com/sakif/student-records/internal/handler"
	"github.com/sakif/student-records/internal/middleware"
	sqliteRepo "github.com/sakif/student-records/internal/repository/sqlite"
	"github.com/sakif/student-records/internal/service"
	"github.com/sakif/student-records/web"
)

// shutdownTimeout bounds how long in-flight requests may run after SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

// Server owns the router and the database connection. The connection is
// closed when Start returns.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database at cfg.StoragePath (creating its directory if
// needed) and wires every route.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.StoragePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqliteRepo.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s, err := NewWithDB(cfg, logger, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wires the routes over an already-open database. Tests use it
// with ":memory:".
func NewWithDB(cfg *config.Config, logger *slog.Logger, db *sqliteRepo.DB) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTES:
//
//	GET  /healthz          → liveness + database ping
//	GET  /metrics          → Prometheus exposition
//	GET  /static/*         → embedded CSS
//	GET  /signup, /login   → forms
//	POST /signup, /login   → register, authenticate
//	GET  /logout           → drop the session
//	GET  /                 → student list
//	GET  /new, POST /new   → add form, create
//	GET  /edit/{id}        → prefilled edit form
//	POST /edit/{id}        → update
//	POST /delete           → delete by form field id
//
// MIDDLEWARE ORDER:
// RequestID first so the logger can print it, Recoverer inside Logger and
// Metrics so a panic is logged and counted as a 500, OptionalAuth last so
// every page knows who is signed in. No route requires a session.
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.Auth.SessionSecret, s.config.Auth.SessionTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	views, err := handler.NewRenderer(web.Templates, s.logger)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("loading static files: %w", err)
	}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(auth.OptionalAuth(tokens))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// handler → service → repository; s.db satisfies both repository interfaces.
	authService := service.NewAuthService(s.db.Users(), tokens, s.logger)
	authHandler := handler.NewAuthHandler(authService, tokens, views, s.logger)

	studentService := service.NewStudentService(s.db.Students(), s.logger)
	studentHandler := handler.NewStudentHandler(studentService, views, s.logger)

	s.router.Get("/signup", authHandler.HandleSignupForm)
	s.router.Post("/signup", authHandler.HandleSignup)
	s.router.Get("/login", authHandler.HandleLoginForm)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/logout", authHandler.HandleLogout)

	s.router.Get("/", studentHandler.HandleList)
	s.router.Get("/new", studentHandler.HandleNewForm)
	s.router.Post("/new", studentHandler.HandleCreate)
	s.router.Get("/edit/{id:[0-9]+}", studentHandler.HandleEditForm)
	s.router.Post("/edit/{id:[0-9]+}", studentHandler.HandleUpdate)
	s.router.Post("/delete", studentHandler.HandleDelete)

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.logger.Error("health check failed", slog.String("error", err.Error()))
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully and closes
// the database.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new connections
//  2. Wait for in-flight requests (up to 30s)
//  3. Close the database (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.HTTPServer.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.HTTPServer.ReadTimeout,
		WriteTimeout: s.config.HTTPServer.WriteTimeout,
		IdleTimeout:  s.config.HTTPServer.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.HTTPServer.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.HTTPServer.Port)),
			slog.String("database", s.config.StoragePath),
			slog.String("env", s.config.Env),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
