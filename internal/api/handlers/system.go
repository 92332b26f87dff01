package handlers

import (
	"net/http"
	"time"

	"github.com/rbatllet/royale-advisor/internal/api/response"
	"github.com/rbatllet/royale-advisor/internal/cards"
	"github.com/rbatllet/royale-advisor/internal/ml"
)

// SystemHandler handles health and status requests.
type SystemHandler struct {
	registry *cards.Provider
	started  time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(registry *cards.Provider) *SystemHandler {
	return &SystemHandler{registry: registry, started: time.Now()}
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Cards         int    `json:"cards"`
	Degraded      bool   `json:"degraded"`
	SchemaVersion int    `json:"schemaVersion"`
}

// Health reports service status. Degraded means the card registry failed
// to load and default costs are in effect.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	index := h.registry.Index()
	response.JSON(w, http.StatusOK, HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Cards:         index.Size(),
		Degraded:      index.Degraded(),
		SchemaVersion: ml.SchemaVersion,
	})
}
