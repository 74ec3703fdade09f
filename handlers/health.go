package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler checks the health status of the service
// @Summary      Health check
// @Description  Check the health status of all services (database, detector, archive)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string  "Service health status"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	status := gin.H{
		"status":   "healthy",
		"db":       "connected",
		"detector": "ready",
		"plants":   h.plants.Count(),
		"archive":  "not_configured",
	}

	if h.archive != nil {
		if h.archive.IsConnected() {
			status["archive"] = "connected"
		} else {
			status["archive"] = "unreachable"
		}
	}

	c.JSON(http.StatusOK, status)
}
