package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/session"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	registry *session.Registry
	max      int
}

// NewHealthHandler creates a new HealthHandler. max is the session limit, 0 for none.
func NewHealthHandler(registry *session.Registry, max int) *HealthHandler {
	return &HealthHandler{registry: registry, max: max}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The server is not ready while the session registry is full.
func (h *HealthHandler) Readiness(c *gin.Context) {
	n := h.registry.Len()
	if h.max > 0 && n >= h.max {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "session limit reached", "sessions": n})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": n})
}
