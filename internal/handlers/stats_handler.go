package handlers

import (
	"net/http"

	"github.com/almhq/license-manager/internal/auth"
	"github.com/almhq/license-manager/internal/services"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

// Get is GET /stats; the payload depends on the caller's role.
func (h *StatsHandler) Get(c *gin.Context) {
	caller := auth.CurrentUser(c)
	if caller.IsAdministrator() {
		stats, err := h.Stats.ForAdministrator()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
		return
	}

	stats, err := h.Stats.ForUser(caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthCheck is GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
