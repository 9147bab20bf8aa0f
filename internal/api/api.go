package api

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/silverboard/internal/api/controller"
	"github.com/ougirez/silverboard/internal/pkg/logger"
	"github.com/ougirez/silverboard/internal/service/dashboard"
	"github.com/ougirez/silverboard/internal/service/ingest"
)

//go:embed static/index.html
var indexPage []byte

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(dashboardService *dashboard.Service, ingestService *ingest.Service) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.WARN)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = sonicSerializer{}
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(svc.RequestIDMiddleware)
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type"},
	}))

	svc.router.GET("/", func(ctx echo.Context) error {
		return ctx.HTMLBlob(http.StatusOK, indexPage)
	})

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(dashboardService, ingestService)

	api.GET("/dashboard", cntrl.GetDashboard)
	api.GET("/calculator/cost", cntrl.GetCost)

	charts := api.Group("/charts")
	charts.GET("/price-trend", cntrl.GetPriceTrendChart)
	charts.GET("/map", cntrl.GetMapChart)
	charts.GET("/top-states", cntrl.GetTopStatesChart)
	charts.GET("/total", cntrl.GetTotalChart)

	datasets := api.Group("/datasets")
	datasets.POST("/price/backfill", cntrl.BackfillPriceData)

	return svc, nil
}
