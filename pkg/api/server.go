// Package api serves the layout engine over HTTP.
//
// Every endpoint takes and returns JSON. Responses use one envelope:
//
//	{"ok": true, "data": {...}}
//	{"ok": false, "error": {"code": "INVALID_ACTION", "message": "..."}}
//
// Routes:
//
//	GET  /health
//	POST /v1/rebuild          region + action → rebuilt region
//	POST /v1/pack             items → packed region
//	POST /v1/measure          region → hotspot areas
//	POST /v1/hotspots/drag    region or areas + point → drop zone
//	POST /v1/hotspots/hover   region or areas + point → hovered item
//	POST /v1/stats            region → fill statistics
//	POST /v1/render           region → rendered artifacts
//
// Request fields not given fall back to the server configuration.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dwthomas77/dropgrid/pkg/config"
	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/observability"
	"github.com/dwthomas77/dropgrid/pkg/pipeline"
	"github.com/dwthomas77/dropgrid/pkg/sizing"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 4 << 20

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-Id"

// Server handles API requests.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Config
	logger *log.Logger
	router chi.Router
}

// New creates a server that runs requests through runner with cfg as the
// default options.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/rebuild", s.handleRebuild)
		r.Post("/pack", s.handlePack)
		r.Post("/measure", s.handleMeasure)
		r.Post("/hotspots/drag", s.handleDrag)
		r.Post("/hotspots/hover", s.handleHover)
		r.Post("/stats", s.handleStats)
		r.Post("/render", s.handleRender)
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

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// requestID keeps a caller-supplied request ID or assigns a new one, and
// stores it where middleware.GetReqID finds it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration)
	})
}

// options returns pipeline options seeded from the server configuration.
func (s *Server) options() pipeline.Options {
	return pipeline.Options{
		MaxSize:  s.cfg.Packing.MaxSize,
		Sizer:    s.cfg.Packing.Sizer,
		Metrics:  s.cfg.Measure,
		Hotspots: s.cfg.Overrides(),
		Logger:   s.logger,
	}
}

// decode reads a JSON body into v, rejecting unknown fields and sizers
// the server does not run.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body")
	}
	switch v := v.(type) {
	case *pipeline.Options:
		return s.checkSizer(v.Sizer)
	case *hitRequest:
		return s.checkSizer(v.Sizer)
	}
	return nil
}

// checkSizer rejects script sizers named by a request unless the server
// allows them. The configured default sizer is trusted.
func (s *Server) checkSizer(expr string) error {
	if s.cfg.Server.AllowScripts || expr == s.cfg.Packing.Sizer || !sizing.IsScript(expr) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidSizer, "script sizers are disabled on this server")
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeError(w, s.logger, err)
}
