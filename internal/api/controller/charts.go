package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/ougirez/silverboard/internal/render"
	"github.com/ougirez/silverboard/internal/service/stats"
)

func (c *Controller) GetPriceTrendChart(ctx echo.Context) error {
	band, err := stats.ParseBand(ctx.QueryParam("band"))
	if err != nil {
		return constants.NewCodedErrorf(http.StatusBadRequest, "%s", err.Error())
	}

	records, err := c.service.PriceTrend(ctx.Request().Context(), band)
	if err != nil {
		return err
	}

	png, err := render.PriceTrend(records)
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, "image/png", png)
}

func (c *Controller) GetMapChart(ctx echo.Context) error {
	data, err := c.service.MapData(ctx.Request().Context())
	if err != nil {
		return err
	}

	png, err := render.Map(data)
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, "image/png", png)
}

func (c *Controller) GetTopStatesChart(ctx echo.Context) error {
	summary, err := c.service.PurchaseSummary(ctx.Request().Context())
	if err != nil {
		return err
	}

	png, err := render.TopStates(summary.TopStates)
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, "image/png", png)
}

func (c *Controller) GetTotalChart(ctx echo.Context) error {
	summary, err := c.service.PurchaseSummary(ctx.Request().Context())
	if err != nil {
		return err
	}

	png, err := render.PeriodTotal("January", summary.TotalKg)
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, "image/png", png)
}
