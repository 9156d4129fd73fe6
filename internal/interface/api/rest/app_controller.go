package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"files-manager-api/internal/application/ports"
)

type AppController struct {
	statusService ports.StatusService
	logger        *zap.Logger
}

func NewAppController(
	r *gin.Engine,
	statusService ports.StatusService,
	logger *zap.Logger,
) *AppController {
	ac := &AppController{
		statusService: statusService,
		logger:        logger,
	}

	r.GET(RouteStatus, ac.GetStatusHandler)
	r.GET(RouteStats, ac.GetStatsHandler)

	return ac
}

func (ac *AppController) GetStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ac.statusService.Status(c.Request.Context()))
}

func (ac *AppController) GetStatsHandler(c *gin.Context) {
	st, err := ac.statusService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get stats"},
		)
		ac.logger.Error("Stats() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, st)
}
