// Package http provides the HTTP handlers of the LocalSites Pro mock API
// and the static site.
package http

import (
	"net/http"
	"time"

	"github.com/atinyakov/LocalSites/internal/models"
)

// isoMillis matches the timestamp layout browsers produce with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

// HealthHandler reports that the API is up.
type HealthHandler struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	writeJSON(w, http.StatusOK, models.HealthStatus{
		Status:    "OK",
		Message:   "LocalSites Pro API is running",
		Timestamp: now().UTC().Format(isoMillis),
	})
}
