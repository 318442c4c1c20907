// Package api provides the HTTP REST boundary of the requirement analyzer.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/logging"
)

// Analyzer evaluates one requirement. Satisfied by service.Orchestrator.
type Analyzer interface {
	Orchestrate(ctx context.Context, req core.Requirement) (*core.ConsolidatedResult, error)
}

// Server exposes analysis and retrieval endpoints.
type Server struct {
	router   chi.Router
	analyzer Analyzer
	store    core.ResultStore
	logger   *logging.Logger

	requestTimeout time.Duration
	enableCORS     bool
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithServerLogger sets the server logger.
func WithServerLogger(logger *logging.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRequestTimeout sets the per-request timeout. It bounds the whole
// orchestration, reviewer fan-out and follow-up calls included.
func WithRequestTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

// WithCORS enables or disables CORS headers.
func WithCORS(enabled bool) ServerOption {
	return func(s *Server) {
		s.enableCORS = enabled
	}
}

// NewServer creates the API server.
func NewServer(analyzer Analyzer, store core.ResultStore, opts ...ServerOption) *Server {
	s := &Server{
		analyzer:       analyzer,
		store:          store,
		logger:         logging.NewNop(),
		requestTimeout: 5 * time.Minute,
		enableCORS:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))
	r.Use(s.loggingMiddleware)

	if s.enableCORS {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}).Handler)
	}

	r.Get("/health", s.handleHealth)
	r.Post("/analyze", s.handleAnalyze)
	r.Post("/batch_analyze", s.handleBatchAnalyze)
	r.Get("/stored", s.handleStored)

	return r
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.Error("failed to encode response", "error", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"status": "error", "error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListenAndServe starts the HTTP server and shuts it down when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting API server", "addr", addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
