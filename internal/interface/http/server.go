// Package http wires the router: middleware order, route table, static
// files, and the HTTP server lifecycle with graceful shutdown.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campus-hub/student-records/internal/interface/http/handlers"
	"github.com/campus-hub/student-records/internal/interface/http/render"
)

// Config contains HTTP server configuration.
type Config struct {
	// Addr is the listen address, e.g. "0.0.0.0:3000".
	Addr string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum duration for idle connections.
	IdleTimeout time.Duration

	// StaticDir is the on-disk directory served under /static/.
	StaticDir string
}

// Server owns the router and the http.Server.
type Server struct {
	router   *chi.Mux
	config   Config
	logger   *slog.Logger
	renderer *render.Renderer
}

// Handlers groups everything the route table needs.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Students *handlers.StudentHandler
	Health   *handlers.HealthHandler
	Sessions *handlers.SessionManager
	Renderer *render.Renderer
}

// New creates the server and builds the route table.
func New(cfg Config, h Handlers, logger *slog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		renderer: h.Renderer,
	}
	s.routes(h)
	return s
}

func (s *Server) routes(h Handlers) {
	r := s.router

	// Middleware order matters: recovery wraps everything, the session must
	// be loaded before any guard runs, and method override must rewrite the
	// verb before routing-by-method happens inside the subrouters.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handlers.RequestLogger(s.logger))
	r.Use(s.recoverer)
	r.Use(handlers.MethodOverride)
	r.Use(h.Sessions.Load)

	// Static assets.
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/healthz", h.Health.Handle)

	// Root: send the visitor wherever their session says they belong.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if handlers.SessionFrom(req.Context()).IsAuthenticated() {
			http.Redirect(w, req, "/students", http.StatusSeeOther)
			return
		}
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	})

	// Auth pages, anonymous only.
	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireAnonymous)
		r.Get("/login", h.Auth.ShowLogin)
		r.Post("/login", h.Auth.Login)
		r.Get("/register", h.Auth.ShowRegister)
		r.Post("/register", h.Auth.Register)
	})

	r.Get("/logout", h.Auth.Logout)
	r.Post("/logout", h.Auth.Logout)

	// Student pages, authenticated only.
	r.Route("/students", func(r chi.Router) {
		r.Use(h.Sessions.RequireAuth)
		r.Get("/", h.Students.List)
		r.Get("/create", h.Students.ShowCreate)
		r.Post("/", h.Students.Create)
		r.Get("/{id}", h.Students.Show)
		r.Get("/{id}/edit", h.Students.ShowEdit)
		r.Put("/{id}", h.Students.Update)
		r.Post("/{id}/update", h.Students.Update)
		r.Delete("/{id}", h.Students.Delete)
		r.Post("/{id}/delete", h.Students.Delete)
	})

	// Unmatched routes get the 404 page.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		err := h.Renderer.Render(w, http.StatusNotFound, "404.html", render.Page{
			Title: "404 - Page Not Found",
			Error: "The page you are looking for does not exist.",
		})
		if err != nil {
			http.NotFound(w, req)
		}
	})
}

// recoverer converts panics into the generic 500 page without leaking any
// internal detail.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered",
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
				)
				s.renderServerError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) renderServerError(w http.ResponseWriter) {
	if s.renderer != nil {
		err := s.renderer.Render(w, http.StatusInternalServerError, "500.html", render.Page{
			Title: "500 - Server Error",
			Error: "Something went wrong on our end. Please try again later.",
		})
		if err == nil {
			return
		}
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// Start runs the server until ctx is cancelled, then shuts down gracefully
// within the given timeout.
func (s *Server) Start(ctx context.Context, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.config.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	}
}

// Router exposes the mux for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
