package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"logtable-backend/config"
	"logtable-backend/internal/model"
	"logtable-backend/internal/script"
	"logtable-backend/internal/service"
)

const mainScript = "main.js.tmpl"

type SystemController struct {
	healthService service.HealthService
	sourcePath    string
	pageLength    int
}

func NewSystemController(cfg *config.Config, healthService service.HealthService) *SystemController {
	return &SystemController{
		healthService: healthService,
		sourcePath:    cfg.Table.SourcePath,
		pageLength:    cfg.Table.PageSize,
	}
}

func RegisterSystemRoutes(router *gin.Engine, controller *SystemController) {
	router.GET("/healthz", controller.GetHealth)
	router.GET("/assets/main.js", controller.GetScript)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// GetHealth godoc
// @Summary      Health of the log search endpoint
// @Description  Reports the result of the most recent probe of the log search endpoint.
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse "Endpoint is up or not yet probed"
// @Failure      503  {object}  dto.HealthResponse "Last probe failed"
// @Router       /healthz [get]
func (c *SystemController) GetHealth(ctx *gin.Context) {
	status := c.healthService.Status()
	code := http.StatusOK
	if status.Status == service.StatusDown {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, status)
}

// GetScript serves the browser glue that binds the log table to this service.
func (c *SystemController) GetScript(ctx *gin.Context) {
	body, err := script.Execute(mainScript, script.M{
		"Source":     c.sourcePath,
		"PageLength": c.pageLength,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to render table script")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to render script", nil))
		return
	}
	ctx.Data(http.StatusOK, "application/javascript; charset=utf-8", []byte(body))
}
