package handlers

import (
	"net/http"

	"homesweethome/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency snapshot without probing.
type HealthHandler struct {
	monitor *utils.HealthMonitor
}

func NewHealthHandler(monitor *utils.HealthMonitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

func (h *HealthHandler) Serve(c *gin.Context) {
	status := h.monitor.Status()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "services": status})
}
