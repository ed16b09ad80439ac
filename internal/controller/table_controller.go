package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"logtable-backend/internal/bridge"
	"logtable-backend/internal/dto"
	"logtable-backend/internal/model"
	"logtable-backend/internal/service"
)

type TableController struct {
	tableService service.TableService
}

func NewTableController(tableService service.TableService) *TableController {
	return &TableController{
		tableService: tableService,
	}
}

func RegisterTableRoutes(router *gin.Engine, sourcePath string, controller *TableController) {
	router.GET(sourcePath, controller.GetTablePage)
	v1 := router.Group("/api/v1/logs")
	{
		v1.GET("/severity", controller.GetSeverity)
	}
}

// GetTablePage godoc
// @Summary      Fetch one page of the log table
// @Description  Server-side processing endpoint for the log table widget. Forwards every widget parameter to the log search endpoint together with page, size and sort, and returns rows with the TYPE cell rendered as a severity label.
// @Tags         logs
// @Produce      json
// @Param        sEcho           query     string  false  "Draw counter echoed back to the widget"
// @Param        iDisplayStart   query     int     false  "Index of the first row to display (default: 0)" minimum(0)
// @Param        iDisplayLength  query     int     false  "Rows per page (default from TABLE_PAGE_SIZE, max: 1000)"
// @Param        sSortDir_0      query     string  false  "Sort direction of the first sorted column (default: desc)" Enums(asc, desc)
// @Param        tableId         query     string  false  "Widget instance id used to discard superseded responses"
// @Success      200  {object}  dto.TableResponse "Page of decorated log rows"
// @Failure      400  {object}  model.Response "Invalid paging parameters"
// @Failure      409  {object}  model.Response "A newer page request for the same table superseded this one"
// @Failure      502  {object}  model.Response "Log search endpoint failed or returned an unexpected body"
// @Router       /api/v1/logs/table [get]
func (c *TableController) GetTablePage(ctx *gin.Context) {
	params, err := bridge.ParseQuery(ctx.Request.URL.RawQuery)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid query string", nil))
		return
	}

	start, err := queryInt(ctx, "iDisplayStart", 0)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, model.NewResponse("iDisplayStart must be an integer", nil))
		return
	}
	length, err := queryInt(ctx, "iDisplayLength", 0)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, model.NewResponse("iDisplayLength must be an integer", nil))
		return
	}

	req := dto.TableRequest{
		Echo:          ctx.Query("sEcho"),
		DisplayStart:  start,
		DisplayLength: length,
		TableID:       ctx.Query("tableId"),
		Params:        params,
	}

	result, err := c.tableService.LoadPage(ctx.Request.Context(), req)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, result)
	case errors.Is(err, service.ErrInvalidRequest):
		ctx.JSON(http.StatusBadRequest, model.NewResponse(err.Error(), nil))
	case errors.Is(err, bridge.ErrStaleResponse):
		ctx.JSON(http.StatusConflict, model.NewResponse("Superseded by a newer request", nil))
	case errors.Is(err, context.Canceled):
		log.Debug().Str("table_id", req.TableID).Msg("Client went away while loading page")
		ctx.Status(http.StatusRequestTimeout)
	default:
		log.Error().Err(err).Str("table_id", req.TableID).Msg("Error loading log table page")
		ctx.JSON(http.StatusBadGateway, model.NewResponse("Failed to load logs", nil))
	}
}

// GetSeverity godoc
// @Summary      Classify a log type
// @Description  Returns the severity class and label markup used for a log TYPE value.
// @Tags         logs
// @Produce      json
// @Param        type  query     string  true  "Log type, e.g. ERROR"
// @Success      200   {object}  dto.SeverityResponse
// @Router       /api/v1/logs/severity [get]
func (c *TableController) GetSeverity(ctx *gin.Context) {
	severityType := ctx.Query("type")
	record := model.LogRecord{SeverityType: severityType}
	ctx.JSON(http.StatusOK, dto.SeverityResponse{
		Type:  severityType,
		Class: bridge.ClassifySeverity(severityType).String(),
		Label: bridge.DecorateRow(record),
	})
}

func queryInt(ctx *gin.Context, name string, def int) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
