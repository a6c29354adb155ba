package api

import (
	"net/http"
	"time"

	"github.com/dayminder/dayminder/internal/api/respond"
)

// HealthHandler reports the cached service health.
type HealthHandler struct {
	isHealthy  func() bool
	components func() map[string]bool
}

// NewHealthHandler builds a handler over the service health aggregator.
// components may be nil.
func NewHealthHandler(isHealthy func() bool, components func() map[string]bool) *HealthHandler {
	return &HealthHandler{isHealthy: isHealthy, components: components}
}

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.isHealthy != nil && h.isHealthy() {
		status = "healthy"
	}
	response := map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if h.components != nil {
		response["components"] = h.components()
	}
	respond.WriteJSON(w, http.StatusOK, response)
}
