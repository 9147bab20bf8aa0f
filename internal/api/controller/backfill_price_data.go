package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/spf13/viper"
)

func (c *Controller) BackfillPriceData(ctx echo.Context) error {
	source := ctx.QueryParam("source")
	if source == "" {
		source = viper.GetString(constants.ViperKeyBackfillURL)
	}
	if source == "" {
		return constants.NewCodedError(http.StatusBadRequest, "no backfill source configured")
	}

	records, err := c.ingest.BackfillPrices(ctx.Request().Context(), source)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, records)
}
