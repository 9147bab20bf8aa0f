package dataset

import (
	"context"

	"github.com/ougirez/silverboard/internal/domain"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/ougirez/silverboard/internal/pkg/geo"
	"github.com/ougirez/silverboard/internal/pkg/logger"
	"github.com/ougirez/silverboard/internal/service/reconcile"
	"golang.org/x/sync/errgroup"
)

// Sources names every flat file the dashboard reads. Geo layers are
// optional; empty means not configured.
type Sources struct {
	Price       string
	Purchases   string
	RegionCodes string
	Boundary    string
	Capitals    string
	States      string
}

// Loader is the injected load-memo for one process: every dashboard pass
// reads through it instead of touching disk directly.
type Loader struct {
	cache *Cache
	src   Sources
}

func NewLoader(src Sources) *Loader {
	return &Loader{cache: NewCache(), src: src}
}

func (l *Loader) Prices(ctx context.Context) ([]domain.PriceRecord, error) {
	v, err := l.cache.Get(ctx, l.src.Price, func(data []byte) (interface{}, error) {
		return ParsePriceCSV(l.src.Price, data)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.PriceRecord), nil
}

func (l *Loader) Purchases(ctx context.Context) ([]domain.PurchaseRecord, error) {
	v, err := l.cache.Get(ctx, l.src.Purchases, func(data []byte) (interface{}, error) {
		return ParsePurchaseCSV(l.src.Purchases, data)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.PurchaseRecord), nil
}

func (l *Loader) RegionTable(ctx context.Context) (*reconcile.Table, error) {
	v, err := l.cache.Get(ctx, l.src.RegionCodes, func(data []byte) (interface{}, error) {
		return reconcile.ParseTable(data)
	})
	if err != nil {
		return nil, err
	}
	return v.(*reconcile.Table), nil
}

func (l *Loader) HasStates() bool   { return l.src.States != "" }
func (l *Loader) HasCapitals() bool { return l.src.Capitals != "" }
func (l *Loader) HasBoundary() bool { return l.src.Boundary != "" }

func (l *Loader) States(ctx context.Context) (*geo.FeatureCollection, error) {
	return l.layer(ctx, l.src.States)
}

func (l *Loader) Capitals(ctx context.Context) (*geo.FeatureCollection, error) {
	return l.layer(ctx, l.src.Capitals)
}

func (l *Loader) Boundary(ctx context.Context) (*geo.FeatureCollection, error) {
	return l.layer(ctx, l.src.Boundary)
}

func (l *Loader) layer(ctx context.Context, location string) (*geo.FeatureCollection, error) {
	if location == "" {
		return nil, constants.ErrDatasetNotFound
	}
	v, err := l.cache.Get(ctx, location, func(data []byte) (interface{}, error) {
		return geo.ParseFeatureCollection(data)
	})
	if err != nil {
		return nil, err
	}
	return v.(*geo.FeatureCollection), nil
}

// ReplacePrices pins a backfilled price dataset over the configured source
// until the process restarts.
func (l *Loader) ReplacePrices(records []domain.PriceRecord) {
	l.cache.Put(l.src.Price, records)
}

// Warm loads every configured source concurrently at boot. Failures are
// logged and left for the first request to retry through the cache.
func (l *Loader) Warm(ctx context.Context) {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error { _, err := l.Prices(egCtx); return err })
	eg.Go(func() error { _, err := l.Purchases(egCtx); return err })
	eg.Go(func() error { _, err := l.RegionTable(egCtx); return err })
	if l.HasStates() {
		eg.Go(func() error { _, err := l.States(egCtx); return err })
	}
	if l.HasCapitals() {
		eg.Go(func() error { _, err := l.Capitals(egCtx); return err })
	}
	if l.HasBoundary() {
		eg.Go(func() error { _, err := l.Boundary(egCtx); return err })
	}

	if err := eg.Wait(); err != nil {
		logger.Warnf(ctx, "dataset warm-up: %s", err.Error())
	}
}
