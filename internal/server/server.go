// Package server exposes the ontology engine over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/tree?attach_entities=bool
//	GET  /api/graph?root=<kind:code>
//	GET  /api/graph/layout?root=<kind:code>
//	GET  /api/entities/{code}/schema
//	POST /api/schema?focus=<name>          (body: diagram text)
//	GET  /metrics
//
// Views over an empty registry or an empty diagram answer 200 with
// "available": false and an informational message. Errors are JSON objects
// {code, message} using the codes of pkg/errors. Every response carries an
// X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/ontograph/pkg/pipeline"
)

// maxRequestBodySize limits POST bodies.
const maxRequestBodySize = 1 << 20

// Options configures a [Server].
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Logger receives one line per request. Nil uses log.Default().
	Logger *log.Logger

	// Registry collects the HTTP metrics and serves /metrics. Nil disables
	// both.
	Registry *prometheus.Registry
}

// Server is the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	router  chi.Router
	http    *http.Server
	metrics *Metrics
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	if opts.Registry != nil {
		s.metrics = NewMetrics(opts.Registry)
	}
	s.router = s.routes(opts.Registry)
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Metrics returns the Prometheus collectors, or nil when metrics are off.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes(reg *prometheus.Registry) chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Get("/graph", s.handleGraph)
		r.Get("/graph/layout", s.handleGraphLayout)
		r.Get("/entities/{code}/schema", s.handleEntitySchema)
		r.Post("/schema", s.handleSchema)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
