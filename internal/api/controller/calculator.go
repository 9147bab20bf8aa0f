package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/silverboard/internal/service/calculator"
	"github.com/shopspring/decimal"
)

type costRequest struct {
	Weight       float64 `query:"weight" validate:"gte=0"`
	Unit         string  `query:"unit" validate:"omitempty,oneof=grams kilograms"`
	PricePerGram float64 `query:"price_per_gram" validate:"gte=0"`
	Currency     string  `query:"currency" validate:"omitempty,oneof=INR USD"`
}

func (c *Controller) GetCost(ctx echo.Context) error {
	req := costRequest{Unit: string(calculator.UnitGrams), Currency: string(calculator.CurrencyINR)}
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}
	if req.Unit == "" {
		req.Unit = string(calculator.UnitGrams)
	}
	if req.Currency == "" {
		req.Currency = string(calculator.CurrencyINR)
	}

	resp, err := c.service.Cost(calculator.Input{
		Weight:       decimal.NewFromFloat(req.Weight),
		Unit:         calculator.Unit(req.Unit),
		PricePerGram: decimal.NewFromFloat(req.PricePerGram),
		Currency:     calculator.Currency(req.Currency),
	})
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}
