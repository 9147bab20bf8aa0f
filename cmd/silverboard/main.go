package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/silverboard/internal/api"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/ougirez/silverboard/internal/pkg/dataset"
	"github.com/ougirez/silverboard/internal/pkg/logger"
	"github.com/ougirez/silverboard/internal/service/dashboard"
	"github.com/ougirez/silverboard/internal/service/ingest"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

func main() {
	ctx := context.Background()

	initConfig(ctx)
	logger.Init(viper.GetBool(constants.ViperKeyDebug))
	defer logger.Sync()

	loader := dataset.NewLoader(dataset.Sources{
		Price:       viper.GetString(constants.ViperKeyPriceSource),
		Purchases:   viper.GetString(constants.ViperKeyPurchaseSource),
		RegionCodes: viper.GetString(constants.ViperKeyRegionCodes),
		Boundary:    viper.GetString(constants.ViperKeyBoundarySource),
		Capitals:    viper.GetString(constants.ViperKeyCapitalsSource),
		States:      viper.GetString(constants.ViperKeyStatesSource),
	})
	loader.Warm(ctx)

	rate := decimal.NewFromFloat(viper.GetFloat64(constants.ViperKeyUSDRate))
	dashboardService := dashboard.NewDashboardService(loader, rate)
	ingestService := ingest.NewIngestService(loader)

	svc, err := api.NewAPIService(dashboardService, ingestService)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := svc.Shutdown(shutdownCtx); err != nil {
			logger.Errorf(ctx, "shutdown: %s", err.Error())
		}
	}()

	svc.Serve(viper.GetString(constants.ViperKeyListenAddr))
}

func initConfig(ctx context.Context) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/silverboard")
	viper.SetEnvPrefix("silverboard")
	viper.AutomaticEnv()

	viper.SetDefault(constants.ViperKeyListenAddr, ":8080")
	viper.SetDefault(constants.ViperKeyDebug, false)
	viper.SetDefault(constants.ViperKeyPriceSource, "data/historical_silver_price.csv")
	viper.SetDefault(constants.ViperKeyPurchaseSource, "data/state_wise_silver_purchased_kg.csv")
	viper.SetDefault(constants.ViperKeyRegionCodes, "data/region_codes.json")
	viper.SetDefault(constants.ViperKeyBoundarySource, "data/india_boundary.geojson")
	viper.SetDefault(constants.ViperKeyCapitalsSource, "data/state_capitals.geojson")
	viper.SetDefault(constants.ViperKeyStatesSource, "")
	viper.SetDefault(constants.ViperKeyUSDRate, constants.DefaultINRPerUSD)

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnf(ctx, "no config file, using defaults: %s", err.Error())
	}
}
