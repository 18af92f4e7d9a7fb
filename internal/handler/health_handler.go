package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"piiguard/internal/domain"
	"piiguard/internal/llm"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	status llm.Availability
}

// NewHealthHandler creates a new HealthHandler reporting the startup model status.
func NewHealthHandler(status llm.Availability) *HealthHandler {
	return &HealthHandler{status: status}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.status.OK() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"model":  h.status.Model(),
			"error":  domain.NewUnavailableError(h.status.Err()).Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": h.status.Model()})
}
