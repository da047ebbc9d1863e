// Package server exposes the seqdiag pipeline over HTTP.
//
// Routes:
//
//	POST /render?format=svg|json|png|pdf  body: diagram text  -> artifact
//	POST /parse                           body: diagram text  -> JSON summary
//	GET  /healthz                                             -> build info
//	GET  /metrics                                             -> Prometheus (optional)
//
// Errors are JSON objects {"code", "message", "line"}; diagrams that do not
// parse are answered with 422 and the source line of the first error.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/seqdiag/pkg/pipeline"
)

// DefaultMaxBodyBytes caps request bodies at 1 MiB.
const DefaultMaxBodyBytes = 1 << 20

// shutdownTimeout bounds how long Serve waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server handles render requests with a shared pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	metrics http.Handler
	defs    pipeline.Options
}

// Option configures a [Server].
type Option func(*Server)

// WithMaxBodyBytes sets the request body limit.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithDefaults sets the render options used when a request does not
// override them.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defs = opts }
}

// New creates a server. A nil logger discards log output.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(instrument)
	r.Use(middleware.Recoverer)

	r.Post("/render", s.handleRender)
	r.Post("/parse", s.handleParse)
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed"})
	})
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
