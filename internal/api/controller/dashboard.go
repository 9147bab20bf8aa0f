package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/ougirez/silverboard/internal/service/stats"
)

func (c *Controller) GetDashboard(ctx echo.Context) error {
	band, err := stats.ParseBand(ctx.QueryParam("band"))
	if err != nil {
		return constants.NewCodedErrorf(http.StatusBadRequest, "%s", err.Error())
	}

	overview := c.service.Overview(ctx.Request().Context(), band)

	return ctx.JSON(http.StatusOK, overview)
}
