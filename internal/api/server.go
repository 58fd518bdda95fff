// Package api exposes the admin HTTP surface that triggers import runs and
// reports their summaries.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

// Runner is the engine slice the server needs.
type Runner interface {
	Run(ctx context.Context, sources []awards.Source, target *awards.Category) (awards.ImportSummary, error)
}

// CategoryGetter resolves a target category id supplied by the caller.
type CategoryGetter interface {
	GetCategory(ctx context.Context, id int64) (awards.Category, error)
}

// Server wires HTTP handlers to the import engine.
type Server struct {
	router     chi.Router
	engine     Runner
	categories CategoryGetter
	sources    []awards.Source
	registry   *prometheus.Registry
	logger     *zap.Logger
}

// New constructs a Server with middleware and routes. The configured
// sources are used when a request does not carry its own.
func New(engine Runner, categories CategoryGetter, sources []awards.Source, registry *prometheus.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine:     engine,
		categories: categories,
		sources:    sources,
		registry:   registry,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	r.Post("/api/import", s.handleImport)
	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// importRequest optionally overrides the configured sources and pins a
// target category for feed-only imports.
type importRequest struct {
	Sources          []awards.Source `json:"sources,omitempty"`
	TargetCategoryID int64           `json:"target_category_id,omitempty"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
			return
		}
	}

	sources := req.Sources
	if len(sources) == 0 {
		sources = s.sources
	}
	if len(sources) == 0 {
		s.writeError(w, http.StatusBadRequest, "no sources configured or supplied")
		return
	}

	var target *awards.Category
	if req.TargetCategoryID != 0 {
		if s.categories == nil {
			s.writeError(w, http.StatusBadRequest, "target category lookup is not available")
			return
		}
		cat, err := s.categories.GetCategory(r.Context(), req.TargetCategoryID)
		if err != nil {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("target category %d: %v", req.TargetCategoryID, err))
			return
		}
		target = &cat
	}

	summary, err := s.engine.Run(r.Context(), sources, target)
	if err != nil {
		// Only a pre-iteration failure reaches here; per-source failures
		// are inside the summary.
		s.logger.Error("import run failed to start", zap.Error(err))
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
