// Package httpapi exposes the alert feed over a JSON HTTP API, alongside
// health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
)

// AlertService provides cached access to the alert feed and alert details.
type AlertService interface {
	FetchAlerts(ctx context.Context, useCache bool) (domain.FeedResult, error)
	FetchAlertDetails(ctx context.Context, url string) (domain.AlertDetail, error)
	ClearCache()
	CacheStats() domain.CacheStats
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// StreamHandler serves a live alert stream over an upgraded connection.
type StreamHandler interface {
	HandleStream(w http.ResponseWriter, r *http.Request)
}

// Server exposes the alert API plus /healthz, /readyz, and /metrics routes.
type Server struct {
	httpServer   *http.Server
	alerts       AlertService
	allowedHosts []string
	logger       *slog.Logger
}

// NewServer creates an HTTP server for the alert API. stream may be nil, in
// which case the streaming route is not registered.
func NewServer(addr string, alerts AlertService, ready ReadinessChecker, stream StreamHandler, allowedHosts []string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		alerts:       alerts,
		allowedHosts: allowedHosts,
		logger:       logger,
	}

	mux.HandleFunc("GET /api/v1/alerts", s.handleAlerts)
	mux.HandleFunc("GET /api/v1/alerts/detail", s.handleAlertDetail)
	mux.HandleFunc("GET /api/v1/alerts/summary", s.handleSummary)
	mux.HandleFunc("POST /api/v1/cache/clear", s.handleCacheClear)
	mux.HandleFunc("GET /api/v1/cache/stats", s.handleCacheStats)
	if stream != nil {
		mux.HandleFunc("GET /api/v1/alerts/stream", stream.HandleStream)
	}
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	useCache := r.URL.Query().Get("refresh") != "1"

	result, err := s.alerts.FetchAlerts(r.Context(), useCache)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAlertDetail(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("url query parameter is required"))
		return
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme != "https" && parsed.Scheme != "http" {
		writeJSON(w, http.StatusBadRequest, errorBody("url must be an absolute http(s) URL"))
		return
	}
	if !slices.Contains(s.allowedHosts, parsed.Hostname()) {
		writeJSON(w, http.StatusBadRequest, errorBody("url host is not allowed"))
		return
	}

	detail, err := s.alerts.FetchAlertDetails(r.Context(), rawURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.alerts.FetchAlerts(r.Context(), true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.Summarize(result.Entries))
}

func (s *Server) handleCacheClear(w http.ResponseWriter, _ *http.Request) {
	s.alerts.ClearCache()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.alerts.CacheStats())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrFeedUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrMalformedDocument), errors.Is(err, domain.ErrUnexpectedStructure):
		status = http.StatusBadGateway
	}
	s.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	writeJSON(w, status, errorBody(err.Error()))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
