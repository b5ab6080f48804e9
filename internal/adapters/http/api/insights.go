// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// InsightsHandler serves the analytics result.
type InsightsHandler struct {
	deps Insighter
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps Insighter) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// HandleInsights handles GET /insights requests. Each request recomputes
// the result from the current report snapshot; nothing is cached.
func (h *InsightsHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	if h.deps == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", ErrUnavailable)
		return
	}

	out, err := h.deps.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "analysis_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
