package domain

import (
	"github.com/shopspring/decimal"
)

type Year = int

// PriceRecord is one row of the historical price table, immutable after load.
type PriceRecord struct {
	Year       Year            `json:"year"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// PurchaseRecord is one row of the state-wise purchase table. RegionCode is
// empty until reconciliation annotates it.
type PurchaseRecord struct {
	StateName  string          `json:"state"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	RegionCode string          `json:"region_code,omitempty"`
}

// RegionSummary is the group-by-sum of purchases for one state, in
// first-seen input order.
type RegionSummary struct {
	StateName  string          `json:"state"`
	RegionCode string          `json:"region_code,omitempty"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
}

// PriceBand is the exclusive price range filter. Exactly one band is active
// per pass.
type PriceBand string

const (
	BandLow  PriceBand = "low"  // <= 20,000
	BandMid  PriceBand = "mid"  // 20,000 < p < 30,000
	BandHigh PriceBand = "high" // >= 30,000
)
