// Package server exposes the contact form over HTTP: the HTML form, the JSON
// submission API, country code search, the OpenAPI document and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/goliatone/go-contactform/components/countrycodes"
	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/metrics"
	"github.com/goliatone/go-contactform/pkg/contract"
	"github.com/goliatone/go-contactform/pkg/controller"
	"github.com/goliatone/go-contactform/pkg/definition"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/submit"
)

// Route paths.
const (
	ContactPath  = "/contact"
	OpenAPIPath  = "/openapi.json"
	MetricsPath  = "/metrics"
	HealthPath   = "/healthz"
	maxBodyBytes = 64 << 10
)

type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOrchestrator injects the form pipeline. Without it the server builds
// one over the embedded definitions, reporting to its metrics.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.orch = o
	}
}

// WithMetrics injects the metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithContract injects the submission contract.
func WithContract(c *contract.Contract) Option {
	return func(s *Server) {
		s.contract = c
	}
}

// WithCountryCodes injects the country code component.
func WithCountryCodes(c *countrycodes.Component) Option {
	return func(s *Server) {
		s.countries = c
	}
}

// Server owns the router and the underlying http.Server.
type Server struct {
	cfg       config.ServerConfig
	logger    *log.Logger
	orch      *orchestrator.Orchestrator
	metrics   *metrics.Metrics
	contract  *contract.Contract
	countries *countrycodes.Component
	handler   http.Handler
}

// New wires the routes. It fails when the contract or the definitions cannot
// be loaded.
func New(ctx context.Context, cfg config.ServerConfig, options ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.metrics == nil {
		s.metrics = metrics.New(nil)
	}
	if s.countries == nil {
		s.countries = countrycodes.New()
	}
	if s.contract == nil {
		c, err := contract.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.contract = c
	}
	if s.orch == nil {
		s.orch = orchestrator.New(
			orchestrator.WithBuildOptions(definition.WithCountryCodes(s.countries)),
			orchestrator.WithControllerOptions(
				controller.WithObserver(s.metrics),
				controller.WithLogger(s.logger),
				controller.WithSubmitter(submit.NewLogSubmitter(s.logger)),
			),
		)
	}
	if _, err := s.orch.FormIDs(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the CORS wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestLogger)

	h := &handlers{orch: s.orch, contract: s.contract, logger: s.logger}
	route := func(name, method, path string, handler http.Handler) {
		router.Methods(method).Path(path).Name(name).Handler(s.metrics.Instrument(name, handler))
	}

	route("contact_form", http.MethodGet, ContactPath, http.HandlerFunc(h.showForm))
	route("contact_submit", http.MethodPost, ContactPath, http.HandlerFunc(h.submitForm))
	route("api_contact", http.MethodPost, contract.SubmitPath, http.HandlerFunc(h.submitJSON))
	route("country_codes", http.MethodGet, s.countries.Path(""), s.countries.Handler())
	route("openapi", http.MethodGet, OpenAPIPath, http.HandlerFunc(h.openAPI))
	route("health", http.MethodGet, HealthPath, http.HandlerFunc(health))
	router.Methods(http.MethodGet).Path(MetricsPath).Name("metrics").Handler(s.metrics.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Content-Type", "Accept"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
			http.MethodHead,
		},
	})
	return c.Handler(router)
}

// ListenAndServe serves until ctx is cancelled, then shuts down within the
// configured grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	grace := s.cfg.ShutdownGrace
	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	s.logger.Info("shutting down", "grace", grace)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", name,
			"status", rw.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}
