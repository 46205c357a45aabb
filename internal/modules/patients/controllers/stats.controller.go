package controllers

import (
	"net/http"

	"clinic-core/internal/modules/patients/services"
	"clinic-core/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	statsService *services.StatsService
}

// NewStatsController creates a new stats controller.
func NewStatsController(statsService *services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// Overview handles GET /api/stats.
func (c *StatsController) Overview(ctx *gin.Context) {
	stats, err := c.statsService.Overview(ctx.Request.Context())
	if err != nil {
		apperrors.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
