package httpv1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/seimple/seimple/internal/service"
)

type LogController struct {
	logService service.Log
}

func NewLogController(ls service.Log) *LogController {
	return &LogController{
		logService: ls,
	}
}

// GetLogs serves the filtered, time-ranged read query. Invalid
// parameters are the caller's problem (400); a failing store is ours
// (500) — never a silent empty result.
func (c *LogController) GetLogs(ctx echo.Context) error {
	params := service.QueryParams{
		Host:   ctx.QueryParam("host"),
		Search: ctx.QueryParam("q"),
		Since:  ctx.QueryParam("since"),
		Until:  ctx.QueryParam("until"),
	}

	if limitText := ctx.QueryParam("limit"); limitText != "" {
		limit, err := strconv.Atoi(limitText)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be an integer"})
		}
		params.Limit = &limit
	}

	logs, err := c.logService.Query(ctx.Request().Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLimit) || errors.Is(err, service.ErrInvalidTimeBound) {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		log.Errorf("GetLogs failed: %v", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "storage failure"})
	}

	return ctx.JSON(http.StatusOK, ToLogsResponse(logs))
}

func (c *LogController) Health(ctx echo.Context) error {
	if err := c.logService.Ping(ctx.Request().Context()); err != nil {
		log.Errorf("Health check failed: %v", err)
		return ctx.JSON(http.StatusInternalServerError, healthResponse{Status: "unavailable"})
	}
	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
