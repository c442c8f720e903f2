package controllers

import (
	"context"
	"net/http"
	"time"
)

// HealthController answers liveness probes
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new health controller
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Index handles GET /health
func (c *HealthController) Index(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if c.db != nil {
		if err := c.db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unhealthy",
				"service": "audit-trail",
				"error":   err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "audit-trail"})
}
