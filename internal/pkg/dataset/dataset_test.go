package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ougirez/silverboard/internal/pkg/constants"
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
`

func TestParsePriceCSV(t *testing.T) {
	records, err := ParsePriceCSV("prices", []byte(priceCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 2020, records[0].Year)
	assert.True(t, records[0].PricePerKg.Equal(decimal.NewFromInt(19000)))
}

func TestParsePriceCSV_ColumnsMayBeReordered(t *testing.T) {
	records, err := ParsePriceCSV("prices", []byte("Silver_Price_INR_per_kg,Year\n19000,2020\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2020, records[0].Year)
}

func TestParsePriceCSV_MissingColumnIsCoded(t *testing.T) {
	_, err := ParsePriceCSV("prices", []byte("Year,Price\n2020,19000\n"))
	require.Error(t, err)

	var coded *constants.CodedError
	require.True(t, errors.As(err, &coded), "schema violations carry an HTTP status")
	assert.Contains(t, err.Error(), "Silver_Price_INR_per_kg")
}

func TestParsePurchaseCSV(t *testing.T) {
	records, err := ParsePurchaseCSV("purchases", []byte(purchaseCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Kerala", records[0].StateName)
	assert.True(t, records[2].QuantityKg.Equal(decimal.NewFromInt(3)))
}

func TestParsePurchaseCSV_BadQuantity(t *testing.T) {
	_, err := ParsePurchaseCSV("purchases", []byte("State,Silver_Purchased_kg\nKerala,lots\n"))
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCache_MemoizesAndRevalidatesByModTime(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prices.csv", priceCSV)

	cache := NewCache()
	parses := 0
	parse := func(data []byte) (interface{}, error) {
		parses++
		return ParsePriceCSV(path, data)
	}

	_, err := cache.Get(context.Background(), path, parse)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), path, parse)
	require.NoError(t, err)
	assert.Equal(t, 1, parses, "unchanged file is served from the memo")

	// Rewrite with a future mod time to force invalidation.
	require.NoError(t, os.WriteFile(path, []byte(priceCSV+"2023,40000\n"), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	v, err := cache.Get(context.Background(), path, parse)
	require.NoError(t, err)
	assert.Equal(t, 2, parses, "changed mod time invalidates the memo")
	assert.Len(t, v, 4)
}

func TestCache_ServesStaleCopyWhenSourceVanishes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prices.csv", priceCSV)

	cache := NewCache()
	parse := func(data []byte) (interface{}, error) { return ParsePriceCSV(path, data) }

	_, err := cache.Get(context.Background(), path, parse)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	v, err := cache.Get(context.Background(), path, parse)
	require.NoError(t, err)
	assert.Len(t, v, 3)
}

func TestCache_PutPinsUntilRestart(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prices.csv", priceCSV)

	cache := NewCache()
	parse := func(data []byte) (interface{}, error) { return ParsePriceCSV(path, data) }

	cache.Put(path, "pinned")

	v, err := cache.Get(context.Background(), path, parse)
	require.NoError(t, err)
	assert.Equal(t, "pinned", v, "pinned entries skip file revalidation")
}

func TestLoader_TypedGetters(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(Sources{
		Price:       writeFile(t, dir, "prices.csv", priceCSV),
		Purchases:   writeFile(t, dir, "purchases.csv", purchaseCSV),
		RegionCodes: writeFile(t, dir, "codes.json", `{"Kerala":"KL","Goa":"GA"}`),
	})

	prices, err := loader.Prices(context.Background())
	require.NoError(t, err)
	assert.Len(t, prices, 3)

	purchases, err := loader.Purchases(context.Background())
	require.NoError(t, err)
	assert.Len(t, purchases, 3)

	table, err := loader.RegionTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	assert.False(t, loader.HasStates())
	assert.False(t, loader.HasCapitals())
	_, err = loader.Capitals(context.Background())
	assert.ErrorIs(t, err, constants.ErrDatasetNotFound)
}
