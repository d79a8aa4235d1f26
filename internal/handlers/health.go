package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler reports liveness for load balancers
type HealthHandler struct {
	started time.Time
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{started: time.Now(), version: version}
}

// Health responds with the service status as JSON
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "event-storefront",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
