package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/barnframe/pkg/config"
	"github.com/matzehuels/barnframe/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server context is canceled.
const shutdownTimeout = 10 * time.Second

// Server is the barnframe HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Server
	logger *log.Logger
}

// NewServer creates a server around runner. A nil logger discards output
// and a zero body limit uses config.DefaultMaxBodyBytes.
func NewServer(runner *pipeline.Runner, cfg config.Server, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	return &Server{runner: runner, cfg: cfg, logger: logger}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout.Duration > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout.Duration))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/beams", s.handleBeams)
		r.Post("/snapshot", s.handleSnapshot)
		r.Post("/validate", s.handleValidate)
		r.Post("/protection", s.handleProtection)
		r.Post("/access-graph", s.handleAccessGraph)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, errNotFound(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.failStatus(w, r, http.StatusMethodNotAllowed, errMethodNotAllowed(r))
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
