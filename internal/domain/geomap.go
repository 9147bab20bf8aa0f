package domain

import "github.com/shopspring/decimal"

type MapMode string

const (
	MapModePolygon MapMode = "polygon"
	MapModePoint   MapMode = "point"
)

// JoinedRegion is one geometry joined against the aggregated purchases.
// QuantityKg is nil when no purchase row reconciled to this region, which
// renders as an explicit no-data treatment, not as zero.
type JoinedRegion struct {
	RegionCode string
	StateName  string
	QuantityKg *decimal.Decimal

	// Rings carries the outer polygon rings in polygon mode.
	Rings [][][2]float64
	// Lon/Lat carry the label point in point mode.
	Lon float64
	Lat float64
}

// MapData is everything one map render consumes.
type MapData struct {
	Mode    MapMode
	Regions []JoinedRegion
	// Boundary is the static background outline for point mode.
	Boundary [][][2]float64
	// MaxKg is the largest joined quantity, the bubble/fill scale anchor.
	MaxKg decimal.Decimal
	// UnmatchedNames are purchase rows that resolved to no region code.
	UnmatchedNames []string
}
