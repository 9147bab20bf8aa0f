package domain

import "github.com/shopspring/decimal"

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SectionError is a fatal condition caught at one dashboard section's
// boundary. Other sections render regardless.
type SectionError struct {
	Message string `json:"message"`
}

// PriceSection is the filtered price trend.
type PriceSection struct {
	Band    PriceBand     `json:"band"`
	Records []PriceRecord `json:"records,omitempty"`
	Error   *SectionError `json:"error,omitempty"`
}

// PurchaseSection carries the grouped, ranked and total purchase figures
// plus the non-fatal reconciliation warnings.
type PurchaseSection struct {
	Grouped        []RegionSummary `json:"grouped,omitempty"`
	TopStates      []RegionSummary `json:"top_states,omitempty"`
	TotalKg        decimal.Decimal `json:"total_kg"`
	UnmatchedNames []string        `json:"unmatched_names,omitempty"`
	Error          *SectionError   `json:"error,omitempty"`
}

// MapSection reports what the map endpoint will render, or why it will not.
type MapSection struct {
	Mode      string          `json:"mode,omitempty"`
	RegionMax decimal.Decimal `json:"region_max_kg"`
	Regions   int             `json:"regions"`
	Error     *SectionError   `json:"error,omitempty"`
}

// Overview is the full dashboard pass, one sub-document per section.
type Overview struct {
	Prices    PriceSection    `json:"prices"`
	Purchases PurchaseSection `json:"purchases"`
	Map       MapSection      `json:"map"`
}

// CostResponse is the calculator output: the raw total plus the display
// string formatted as "{currency} {amount}".
type CostResponse struct {
	Currency  string          `json:"currency"`
	Total     decimal.Decimal `json:"total"`
	Formatted string          `json:"formatted"`
}
