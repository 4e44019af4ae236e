// Package server exposes the eml pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz     liveness probe, answers "ok"
//	GET  /version     build information as JSON
//	GET  /v1/demo     the demo document as YAML
//	POST /v1/render   render the YAML request body
//
// /v1/render takes its options from the query string:
//
//	format      svg (default), png, pdf or json
//	type        timeline (default) or nodelink
//	arrowheads  true to end arrows with a marker
//	detailed    true for full nodelink labels
//	scale       PNG scale factor
//
// Failures are answered with a JSON body {"code": ..., "message": ...}.
// Problems with the request map to 4xx, everything else to 5xx.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/waiteperspectives/eml/pkg/pipeline"
)

// DefaultMaxBodyBytes limits render request bodies when Options leaves it unset.
const DefaultMaxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// Runner executes render requests. Required.
	Runner *pipeline.Runner

	// Logger receives one line per request. Defaults to the runner's logger.
	Logger *log.Logger

	// Defaults are the render options used for query parameters the
	// request leaves out.
	Defaults pipeline.Options

	// MaxBodyBytes limits the render request body.
	MaxBodyBytes int64
}

// Server is the HTTP front end. It is an http.Handler.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
	router   chi.Router
}

// New builds a server and its routes.
func New(opts Options) *Server {
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Logger == nil {
		opts.Logger = opts.Runner.Logger
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		runner:   opts.Runner,
		logger:   opts.Logger,
		defaults: opts.Defaults,
		maxBody:  opts.MaxBodyBytes,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/demo", s.handleDemo)
		r.Post("/render", s.handleRender)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
