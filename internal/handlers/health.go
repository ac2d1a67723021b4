package handlers

import (
	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness and the active store/filter
// configuration.
type HealthHandler struct {
	storeDriver string
	filterMode  string
}

func NewHealthHandler(storeDriver, filterMode string) *HealthHandler {
	return &HealthHandler{storeDriver: storeDriver, filterMode: filterMode}
}

// CheckHealth returns the service status.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "reviewboard",
		"components": gin.H{
			"store_driver": h.storeDriver,
			"error_filter": h.filterMode,
		},
	})
}
