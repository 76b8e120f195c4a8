// Package api exposes documents and annotations over a local JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/lenk/internal/core/ports/driving"
	"github.com/custodia-labs/lenk/internal/logger"
)

// ErrMissingService is returned when a required driving port is nil.
var ErrMissingService = errors.New("api: document and annotation services are required")

// Ports aggregates the driving ports the API serves.
type Ports struct {
	Document   driving.DocumentService
	Annotation driving.AnnotationService
}

// Server routes HTTP requests to the services.
type Server struct {
	router  chi.Router
	ports   *Ports
	limiter *rate.Limiter
}

// Option configures the server.
type Option func(*Server)

// WithRateLimit bounds write requests to perSecond with the given burst.
// Non-positive values keep the defaults.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// NewServer builds the router over ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if ports == nil || ports.Document == nil || ports.Annotation == nil {
		return nil, ErrMissingService
	}

	s := &Server{
		router:  chi.NewRouter(),
		ports:   ports,
		limiter: rate.NewLimiter(5, 10),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	log := logger.With("api")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/api/ping", s.handlePing)
	s.router.Get("/api/file", s.handleFile)
	s.router.Get("/api/file/cell", s.handleCell)
	s.router.Get("/api/annotations", s.handleListAnnotations)

	s.router.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/api/annotations", s.handleAddAnnotation)
		r.Delete("/api/annotations/{id}", s.handleDeleteAnnotation)
		r.Post("/api/export", s.handleExport)
	})

	s.router.Get("/api/export", s.handleCompose)
}

// rateLimit rejects write requests beyond the configured rate.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// httpServer returns the http.Server for addr. Its internal errors go to
// the shared logger.
func (s *Server) httpServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Logger().Handler(), slog.LevelWarn),
	}
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := s.httpServer(addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("api shutdown", "error", err)
		}
	}()

	logger.Info("api listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", addr, err)
	}
	return nil
}
