// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teampulse/pulse/internal/domain/types"
	"github.com/teampulse/pulse/pkg/metrics"
)

// Insighter produces the analytics result the read routes serve. Using
// an interface keeps the handler layer loosely coupled to the service.
type Insighter interface {
	// Run recomputes the full analytics result from the report store.
	Run(ctx context.Context) (types.Insights, error)
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	healthHandler   *HealthHandler
	insightsHandler *InsightsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Insighter) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		insightsHandler: NewInsightsHandler(deps),
	}
}

// Router builds the route tree. Every run is stateless, so the surface
// is read-only: health, insights, and Prometheus metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/insights", MetricsMiddleware(s.insightsHandler.HandleInsights, "insights"))
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
