package dashboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ougirez/silverboard/internal/domain"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/ougirez/silverboard/internal/pkg/dataset"
	"github.com/ougirez/silverboard/internal/pkg/geo"
	"github.com/ougirez/silverboard/internal/pkg/logger"
	"github.com/ougirez/silverboard/internal/service/calculator"
	"github.com/ougirez/silverboard/internal/service/reconcile"
	"github.com/ougirez/silverboard/internal/service/stats"
	"github.com/shopspring/decimal"
)

// Service runs one dashboard pass: cached loads, reconciliation,
// aggregation, geo join. Rendering consumes its outputs.
type Service struct {
	loader    *dataset.Loader
	inrPerUSD decimal.Decimal
}

func NewDashboardService(loader *dataset.Loader, inrPerUSD decimal.Decimal) *Service {
	return &Service{loader: loader, inrPerUSD: inrPerUSD}
}

// PriceTrend returns the price records inside the requested band, in table
// order.
func (s *Service) PriceTrend(ctx context.Context, band domain.PriceBand) ([]domain.PriceRecord, error) {
	prices, err := s.loader.Prices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	return stats.FilterByBand(prices, band), nil
}

// PurchaseSummary is the geometry-free aggregate view of the purchase
// table: every raw row counts here even when its name never reconciles.
type PurchaseSummary struct {
	Grouped   []domain.RegionSummary
	TopStates []domain.RegionSummary
	TotalKg   decimal.Decimal
	Unmatched []string
}

func (s *Service) PurchaseSummary(ctx context.Context) (*PurchaseSummary, error) {
	purchases, err := s.loader.Purchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}

	// Reconciliation only feeds the unmatched-names diagnostic here; the
	// aggregates stand on the raw rows. A broken code table degrades the
	// diagnostic, not the section.
	records := purchases
	var unmatched []string
	if table, err := s.loader.RegionTable(ctx); err != nil {
		logger.Warnf(ctx, "region codes unavailable, skipping reconciliation: %s", err.Error())
	} else {
		res := table.Annotate(purchases)
		records = res.Records
		unmatched = res.Unmatched
		if len(unmatched) > 0 {
			logger.Warnf(ctx, "reconciliation left %d state names unmatched: %v", len(unmatched), unmatched)
		}
	}

	grouped := stats.GroupByState(records)
	return &PurchaseSummary{
		Grouped:   grouped,
		TopStates: stats.TopStates(grouped, constants.TopStatesCount),
		TotalKg:   stats.Total(records),
		Unmatched: unmatched,
	}, nil
}

func (s *Service) annotatedPurchases(ctx context.Context) (*reconcile.Result, error) {
	purchases, err := s.loader.Purchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}
	table, err := s.loader.RegionTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load region codes: %w", err)
	}

	res := table.Annotate(purchases)
	if len(res.Unmatched) > 0 {
		logger.Warnf(ctx, "reconciliation left %d state names unmatched: %v", len(res.Unmatched), res.Unmatched)
	}
	return &res, nil
}

// MapData joins the aggregated purchases onto whichever geo layer is
// configured. Polygon layer wins over capitals when both are present.
func (s *Service) MapData(ctx context.Context) (*domain.MapData, error) {
	switch {
	case s.loader.HasStates():
		return s.polygonMapData(ctx)
	case s.loader.HasCapitals():
		return s.pointMapData(ctx)
	default:
		return nil, constants.ErrNoGeoLayers
	}
}

// polygonMapData joins grouped purchases onto state polygons by exact
// normalized-name equality; no code table involved.
func (s *Service) polygonMapData(ctx context.Context) (*domain.MapData, error) {
	states, err := s.loader.States(ctx)
	if err != nil {
		return nil, fmt.Errorf("load states layer: %w", err)
	}

	purchases, err := s.loader.Purchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}
	grouped := stats.GroupByState(purchases)

	byName := make(map[string]decimal.Decimal, len(grouped))
	for _, g := range grouped {
		byName[g.StateName] = g.QuantityKg
	}

	data := &domain.MapData{Mode: domain.MapModePolygon}
	matched := 0
	for i := range states.Features {
		f := &states.Features[i]
		rings, err := f.Geometry.Rings()
		if err != nil {
			return nil, fmt.Errorf("states layer feature %d: %w", i, err)
		}

		region := domain.JoinedRegion{Rings: rings}
		if name, ok := f.Property("state"); ok {
			region.StateName = reconcile.Normalize(name)
			if qty, ok := byName[region.StateName]; ok {
				q := qty
				region.QuantityKg = &q
				matched++
				if qty.Cmp(data.MaxKg) > 0 {
					data.MaxKg = qty
				}
			}
		}
		data.Regions = append(data.Regions, region)
	}

	if matched == 0 {
		return nil, constants.ErrNoMapData
	}
	return data, nil
}

// pointMapData joins reconciled purchases onto capital points by region
// code, with the country outline as a static background.
func (s *Service) pointMapData(ctx context.Context) (*domain.MapData, error) {
	capitals, err := s.loader.Capitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load capitals layer: %w", err)
	}

	data := &domain.MapData{Mode: domain.MapModePoint}

	if s.loader.HasBoundary() {
		boundary, err := s.loader.Boundary(ctx)
		if err != nil {
			return nil, fmt.Errorf("load boundary layer: %w", err)
		}
		if err := geo.CheckCompatible(boundary.CRSName(), capitals.CRSName()); err != nil {
			return nil, err
		}
		for i := range boundary.Features {
			rings, err := boundary.Features[i].Geometry.Rings()
			if err != nil {
				return nil, fmt.Errorf("boundary feature %d: %w", i, err)
			}
			data.Boundary = append(data.Boundary, rings...)
		}
	}

	annotated, err := s.annotatedPurchases(ctx)
	if err != nil {
		return nil, err
	}
	data.UnmatchedNames = annotated.Unmatched

	byCode := make(map[string]decimal.Decimal)
	nameByCode := make(map[string]string)
	for _, g := range stats.GroupByState(annotated.Records) {
		if g.RegionCode == "" {
			continue
		}
		byCode[g.RegionCode] = byCode[g.RegionCode].Add(g.QuantityKg)
		if _, ok := nameByCode[g.RegionCode]; !ok {
			nameByCode[g.RegionCode] = g.StateName
		}
	}

	codeSeen := false
	matched := 0
	for i := range capitals.Features {
		f := &capitals.Features[i]
		code, ok := f.Property("state")
		if !ok {
			continue
		}
		codeSeen = true

		lon, lat, err := f.Geometry.Point()
		if err != nil {
			return nil, fmt.Errorf("capitals feature %d: %w", i, err)
		}

		region := domain.JoinedRegion{RegionCode: code, StateName: nameByCode[code], Lon: lon, Lat: lat}
		if qty, ok := byCode[code]; ok {
			q := qty
			region.QuantityKg = &q
			matched++
			if qty.Cmp(data.MaxKg) > 0 {
				data.MaxKg = qty
			}
		}
		data.Regions = append(data.Regions, region)
	}

	if !codeSeen {
		return nil, constants.NewMissingGeoCodeError("capitals")
	}
	if matched == 0 {
		return nil, constants.ErrNoMapData
	}
	return data, nil
}

// Cost runs the sidebar calculator with the configured conversion rate.
func (s *Service) Cost(in calculator.Input) (*domain.CostResponse, error) {
	total, err := calculator.Cost(in, s.inrPerUSD)
	if err != nil {
		return nil, constants.NewCodedErrorf(http.StatusBadRequest, "cost calculation: %s", err.Error())
	}
	return &domain.CostResponse{
		Currency:  string(in.Currency),
		Total:     total,
		Formatted: calculator.Format(in.Currency, total),
	}, nil
}

// Overview renders the numeric side of every section, catching each fatal
// condition at its own section boundary so the rest still renders.
func (s *Service) Overview(ctx context.Context, band domain.PriceBand) *domain.Overview {
	out := &domain.Overview{}

	out.Prices.Band = band
	if records, err := s.PriceTrend(ctx, band); err != nil {
		logger.Errorf(ctx, "price section: %s", err.Error())
		out.Prices.Error = &domain.SectionError{Message: err.Error()}
	} else {
		out.Prices.Records = records
	}

	if summary, err := s.PurchaseSummary(ctx); err != nil {
		logger.Errorf(ctx, "purchase section: %s", err.Error())
		out.Purchases.Error = &domain.SectionError{Message: err.Error()}
	} else {
		out.Purchases.Grouped = summary.Grouped
		out.Purchases.TopStates = summary.TopStates
		out.Purchases.TotalKg = summary.TotalKg
		out.Purchases.UnmatchedNames = summary.Unmatched
	}

	if data, err := s.MapData(ctx); err != nil {
		logger.Errorf(ctx, "map section: %s", err.Error())
		out.Map.Error = &domain.SectionError{Message: err.Error()}
	} else {
		out.Map.Mode = string(data.Mode)
		out.Map.Regions = len(data.Regions)
		out.Map.RegionMax = data.MaxKg
	}

	return out
}
