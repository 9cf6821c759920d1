package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/handiism/topsters/internal/config"
	"github.com/handiism/topsters/internal/pipeline"
)

// DefaultRequestTimeout bounds a single render request.
const DefaultRequestTimeout = 2 * time.Minute

// ManagerFactory builds the pipeline for one request. settings already
// carries the request's parameters and access token.
type ManagerFactory func(settings *config.Settings) *pipeline.Manager

// Server serves collages over HTTP.
type Server struct {
	base       *config.Settings
	newManager ManagerFactory
	timeout    time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithManagerFactory replaces how per-request pipelines are built.
func WithManagerFactory(f ManagerFactory) Option {
	return func(s *Server) {
		if f != nil {
			s.newManager = f
		}
	}
}

// WithRequestTimeout overrides DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Server whose requests start from base settings.
func New(base *config.Settings, opts ...Option) *Server {
	if base == nil {
		base = config.DefaultSettings()
	}
	s := &Server{
		base: base,
		newManager: func(settings *config.Settings) *pipeline.Manager {
			return pipeline.NewManager(settings, nil)
		},
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(s.timeout))
		r.Use(requireToken)

		r.Get("/collage", s.handleCollage)
		r.Get("/list", s.handleList)
		r.Get("/regions/{album}", s.handleRegions)
	})

	return r
}
