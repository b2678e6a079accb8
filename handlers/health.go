package handlers

import (
	"net/http"

	"servicehub/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

func NewHealthHandler(monitor *utils.HealthMonitor) *HealthHandler {
	return &HealthHandler{Monitor: monitor}
}

// Health reports liveness plus the last dependency probe.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.Monitor.Status()
	state := "ok"
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": state, "message": "Hi, I'm ServiceHub", "dependencies": status})
}
