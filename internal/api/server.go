// Package api provides the local HTTP server for Moneta. It exposes the
// progress dashboard, goal and period management, and the event endpoints
// the UI reports domain events through.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moneta-app/moneta/internal/app/progress"
	"github.com/moneta-app/moneta/internal/infra/metrics"
)

// Server is the Moneta HTTP API server.
type Server struct {
	svc            *progress.Service
	metricsEnabled bool
}

// NewServer creates a new API server over the progress service.
func NewServer(svc *progress.Service) *Server {
	return &Server{svc: svc}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)
	if s.metricsEnabled {
		r.Use(timingMiddleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.svc.Ping(); err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Progress dashboard (read-only)
	r.Route("/api/progress", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/rank", s.handleRank)
		r.Get("/streak", s.handleStreak)
		r.Get("/achievements", s.handleAchievements)
	})

	// Saving goals
	r.Route("/api/goals", func(r chi.Router) {
		r.Get("/", s.handleListGoals)
		r.Post("/", s.handleCreateGoal)
		r.Get("/{id}", s.handleGetGoal)
		r.Delete("/{id}", s.handleDeleteGoal)
		r.Post("/{id}/contribute", s.handleContribute)
		r.Post("/{id}/withdraw", s.handleWithdraw)
	})

	// Financial periods
	r.Route("/api/periods", func(r chi.Router) {
		r.Get("/", s.handleListPeriods)
		r.Post("/", s.handleCreatePeriod)
		r.Get("/{id}/score", s.handleScorePeriod)
		r.Post("/{id}/close", s.handleClosePeriod)
		r.Post("/{id}/transactions", s.handleRecordTransaction)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// timingMiddleware records request duration per route pattern.
func timingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the local UI.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
