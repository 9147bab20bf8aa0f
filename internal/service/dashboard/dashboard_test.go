package dashboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ougirez/silverboard/internal/domain"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/ougirez/silverboard/internal/pkg/dataset"
	"github.com/ougirez/silverboard/internal/service/calculator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priceCSV = `Year,Silver_Price_INR_per_kg
2020,19000
2021,25000
2022,31000
`

const purchaseCSV = `State,Silver_Purchased_kg
Kerala,10
Kerala,5
Goa,3
Orissa,7
Atlantis,2
`

const codesJSON = `{"Kerala":"KL","Goa":"GA","Odisha":"OD","Orissa":"OD"}`

const capitalsJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type":"Feature","properties":{"STATE":"KL"},"geometry":{"type":"Point","coordinates":[76.95,8.52]}},
    {"type":"Feature","properties":{"STATE":"GA"},"geometry":{"type":"Point","coordinates":[73.83,15.49]}},
    {"type":"Feature","properties":{"STATE":"OD"},"geometry":{"type":"Point","coordinates":[85.82,20.30]}},
    {"type":"Feature","properties":{"STATE":"TN"},"geometry":{"type":"Point","coordinates":[80.27,13.08]}}
  ]
}`

const boundaryJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type":"Feature","properties":{"name":"India"},
     "geometry":{"type":"Polygon","coordinates":[[[68,8],[97,8],[97,35],[68,35],[68,8]]]}}
  ]
}`

const statesJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type":"Feature","properties":{"state":"Kerala"},
     "geometry":{"type":"Polygon","coordinates":[[[76,8],[77,8],[77,12],[76,8]]]}},
    {"type":"Feature","properties":{"state":"Goa"},
     "geometry":{"type":"Polygon","coordinates":[[[73,15],[74,15],[74,16],[73,15]]]}},
    {"type":"Feature","properties":{"state":"Ladakh"},
     "geometry":{"type":"Polygon","coordinates":[[[76,33],[78,33],[78,35],[76,33]]]}}
  ]
}`

type fixture struct {
	dir   string
	files map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{dir: t.TempDir(), files: map[string]string{}}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	f.files[name] = path
	return path
}

func newService(t *testing.T, src dataset.Sources) *Service {
	t.Helper()
	return NewDashboardService(dataset.NewLoader(src), decimal.NewFromFloat(83.0))
}

func baseSources(t *testing.T, f *fixture) dataset.Sources {
	return dataset.Sources{
		Price:       f.write(t, "prices.csv", priceCSV),
		Purchases:   f.write(t, "purchases.csv", purchaseCSV),
		RegionCodes: f.write(t, "codes.json", codesJSON),
	}
}

func TestPriceTrend(t *testing.T) {
	f := newFixture(t)
	svc := newService(t, baseSources(t, f))

	records, err := svc.PriceTrend(context.Background(), domain.BandMid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2021, records[0].Year)
}

func TestPurchaseSummary(t *testing.T) {
	f := newFixture(t)
	svc := newService(t, baseSources(t, f))

	summary, err := svc.PurchaseSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Grouped, 4)
	assert.Equal(t, "Kerala", summary.Grouped[0].StateName)
	assert.True(t, summary.Grouped[0].QuantityKg.Equal(decimal.NewFromInt(15)))

	require.Len(t, summary.TopStates, 4)
	assert.Equal(t, "Kerala", summary.TopStates[0].StateName)

	assert.True(t, summary.TotalKg.Equal(decimal.NewFromInt(27)),
		"the total covers raw rows, unmatched ones included")

	assert.Equal(t, []string{"Atlantis"}, summary.Unmatched)
}

// The aggregates stand on the raw purchase table; a broken code table only
// costs the unmatched-names diagnostic.
func TestPurchaseSummary_BrokenCodeTable(t *testing.T) {
	f := newFixture(t)
	src := baseSources(t, f)
	src.RegionCodes = f.write(t, "codes.json", `{broken json`)
	svc := newService(t, src)

	summary, err := svc.PurchaseSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Grouped, 4)
	assert.Equal(t, "", summary.Grouped[0].RegionCode)
	assert.True(t, summary.TotalKg.Equal(decimal.NewFromInt(27)))
	assert.Empty(t, summary.Unmatched)
}

// Only the map depends on reconciliation, so a broken code table errors the
// map section alone.
func TestOverview_BrokenCodeTableScopedToMap(t *testing.T) {
	f := newFixture(t)
	src := baseSources(t, f)
	src.RegionCodes = f.write(t, "codes.json", `{broken json`)
	src.Capitals = f.write(t, "capitals.geojson", capitalsJSON)
	svc := newService(t, src)

	overview := svc.Overview(context.Background(), domain.BandLow)

	assert.Nil(t, overview.Prices.Error)
	assert.Nil(t, overview.Purchases.Error)
	assert.True(t, overview.Purchases.TotalKg.Equal(decimal.NewFromInt(27)))
	require.NotNil(t, overview.Map.Error)
	assert.Contains(t, overview.Map.Error.Message, "region code")
}

func TestMapData_PointMode(t *testing.T) {
	f := newFixture(t)
	src := baseSources(t, f)
	src.Boundary = f.write(t, "boundary.geojson", boundaryJSON)
	src.Capitals = f.write(t, "capitals.geojson", capitalsJSON)
	svc := newService(t, src)

	data, err := svc.MapData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.MapModePoint, data.Mode)
	require.Len(t, data.Boundary, 1)
	require.Len(t, data.Regions, 4)

	byCode := map[string]domain.JoinedRegion{}
	for _, r := range data.Regions {
		byCode[r.RegionCode] = r
	}

	require.NotNil(t, byCode["KL"].QuantityKg)
	assert.True(t, byCode["KL"].QuantityKg.Equal(decimal.NewFromInt(15)))
	require.NotNil(t, byCode["OD"].QuantityKg, "the historical spelling reconciles through its alias")
	assert.True(t, byCode["OD"].QuantityKg.Equal(decimal.NewFromInt(7)))

	assert.Nil(t, byCode["TN"].QuantityKg, "a capital with no purchases joins as null, not zero")

	assert.True(t, data.MaxKg.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, []string{"Atlantis"}, data.UnmatchedNames)
}

func TestMapData_PolygonMode(t *testing.T) {
	f := newFixture(t)
	src := baseSources(t, f)
	src.States = f.write(t, "states.geojson", statesJSON)
	svc := newService(t, src)

	data, err := svc.MapData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.MapModePolygon, data.Mode)
	require.Len(t, data.Regions, 3)

	assert.NotNil(t, data.Regions[0].QuantityKg)
	assert.NotNil(t, data.Regions[1].QuantityKg)
	assert.Nil(t, data.Regions[2].QuantityKg, "an unsold state renders as no-data, not zero")
}

func TestMapData_NoLayersConfigured(t *testing.T) {
	f := newFixture(t)
	svc := newService(t, baseSources(t, f))

	_, err := svc.MapData(context.Background())
	assert.ErrorIs(t, err, constants.ErrNoGeoLayers)
}

func TestMapData_EmptyJoin(t *testing.T) {
	f := newFixture(t)
	src := baseSources(t, f)
	// None of these codes appear in the purchase table.
	src.Capitals = f.write(t, "capitals.geojson", `{
	  "type": "FeatureCollection",
	  "features": [
	    {"type":"Feature","properties":{"STATE":"XX"},"geometry":{"type":"Point","coordinates":[0,0]}}
	  ]
	}`)
	svc := newService(t, src)

	_, err := svc.MapData(context.Background())
	assert.ErrorIs(t, err, constants.ErrNoMapData,
		"an empty join is an explicit no-data signal, never a render attempt")
}

func TestMapData_MissingCodeColumn(t *testing.T) {
	f := newFixture(t)
	src := baseSources(t, f)
	src.Capitals = f.write(t, "capitals.geojson", `{
	  "type": "FeatureCollection",
	  "features": [
	    {"type":"Feature","properties":{"name":"Chennai"},"geometry":{"type":"Point","coordinates":[80.27,13.08]}}
	  ]
	}`)
	svc := newService(t, src)

	_, err := svc.MapData(context.Background())
	require.Error(t, err)

	var coded *constants.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Contains(t, err.Error(), "state")
}

func TestMapData_CRSMismatch(t *testing.T) {
	f := newFixture(t)
	src := baseSources(t, f)
	src.Boundary = f.write(t, "boundary.geojson", `{
	  "type": "FeatureCollection",
	  "crs": {"type": "name", "properties": {"name": "EPSG:32643"}},
	  "features": [
	    {"type":"Feature","properties":{},
	     "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
	  ]
	}`)
	src.Capitals = f.write(t, "capitals.geojson", capitalsJSON)
	svc := newService(t, src)

	_, err := svc.MapData(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reprojection")
}

// A broken price source must not take the purchase or map sections down
// with it; each section catches its own fatal condition.
func TestOverview_SectionIsolation(t *testing.T) {
	f := newFixture(t)
	src := baseSources(t, f)
	src.Price = f.write(t, "bad_prices.csv", "Year,Price\n2020,19000\n")
	src.Capitals = f.write(t, "capitals.geojson", capitalsJSON)
	svc := newService(t, src)

	overview := svc.Overview(context.Background(), domain.BandLow)

	require.NotNil(t, overview.Prices.Error)
	assert.Contains(t, overview.Prices.Error.Message, "Silver_Price_INR_per_kg")

	assert.Nil(t, overview.Purchases.Error)
	assert.True(t, overview.Purchases.TotalKg.Equal(decimal.NewFromInt(27)))

	assert.Nil(t, overview.Map.Error)
	assert.Equal(t, string(domain.MapModePoint), overview.Map.Mode)
	assert.Equal(t, 4, overview.Map.Regions)
}

func TestOverview_MapErrorIsScoped(t *testing.T) {
	f := newFixture(t)
	svc := newService(t, baseSources(t, f))

	overview := svc.Overview(context.Background(), domain.BandLow)

	assert.Nil(t, overview.Prices.Error)
	assert.Nil(t, overview.Purchases.Error)
	require.NotNil(t, overview.Map.Error, "no geo layers means the map section reports, others render")
}

func TestCost(t *testing.T) {
	f := newFixture(t)
	svc := newService(t, baseSources(t, f))

	resp, err := svc.Cost(costInput(100, "grams", 75, "INR"))
	require.NoError(t, err)
	assert.Equal(t, "INR 7,500.00", resp.Formatted)

	_, err = svc.Cost(costInput(0, "furlongs", 75, "INR"))
	assert.Error(t, err)
}

func costInput(weight float64, unit string, price float64, currency string) calculator.Input {
	return calculator.Input{
		Weight:       decimal.NewFromFloat(weight),
		Unit:         calculator.Unit(unit),
		PricePerGram: decimal.NewFromFloat(price),
		Currency:     calculator.Currency(currency),
	}
}
