// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and build version
//	GET  /api/presets        template presets
//	POST /api/render         render the script in the body (?format=, ?template=)
//	GET  /api/live           websocket pushing render data of the watched script
//	GET  /api/live/current   latest render data of the watched script
//
// Scripts posted to /api/render may not import files.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/commitgraph/internal/watch"
	"github.com/matzehuels/commitgraph/pkg/observability"
	"github.com/matzehuels/commitgraph/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultMaxBody caps posted script size.
	DefaultMaxBody = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// Config configures a [Server].
type Config struct {
	Addr    string
	Runner  *pipeline.Runner
	Logger  *log.Logger
	MaxBody int64
	// Watch names a script file whose render data /api/live pushes.
	Watch string
	// Template overrides the watched script's preset.
	Template string
}

// Server serves the render API.
type Server struct {
	cfg    Config
	router chi.Router
	live   *hub
}

// New creates a server. A nil runner renders without a cache.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBody
	}
	s := &Server{cfg: cfg, live: newHub(cfg.Logger)}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/render", s.handleRender)
		r.Get("/live", s.handleLive)
		r.Get("/live/current", s.handleLiveCurrent)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is done, watching the configured script if any.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 2)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()
	if s.cfg.Watch != "" {
		go func() {
			err := watch.File(ctx, s.cfg.Watch, watch.DefaultDebounce,
				func() { s.rebuild(ctx) },
				func(err error) { s.cfg.Logger.Warn("watcher error", "err", err) })
			if err != nil && !errors.Is(err, context.Canceled) {
				errc <- err
			}
		}()
		s.cfg.Logger.Info("watching script", "path", s.cfg.Watch)
	}

	select {
	case <-ctx.Done():
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.live.close()
	return srv.Shutdown(shutdownCtx)
}

// instrument reports requests to the observability hooks and the logger.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"id", middleware.GetReqID(r.Context()))
	})
}
