package stats

import (
	"fmt"
	"sort"

	"github.com/ougirez/silverboard/internal/domain"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/ougirez/silverboard/internal/service/reconcile"
	"github.com/shopspring/decimal"
)

var (
	bandLow  = decimal.NewFromInt(constants.PriceBandLow)
	bandHigh = decimal.NewFromInt(constants.PriceBandHigh)
)

// ParseBand maps the band query value onto the enum.
func ParseBand(s string) (domain.PriceBand, error) {
	switch domain.PriceBand(s) {
	case domain.BandLow, domain.BandMid, domain.BandHigh:
		return domain.PriceBand(s), nil
	case "":
		return domain.BandLow, nil
	default:
		return "", fmt.Errorf("unknown price band %q", s)
	}
}

// FilterByBand keeps the records inside one price band. The three bands
// partition any record set: <=L, strictly between, >=U.
func FilterByBand(records []domain.PriceRecord, band domain.PriceBand) []domain.PriceRecord {
	out := make([]domain.PriceRecord, 0, len(records))
	for _, rec := range records {
		var keep bool
		switch band {
		case domain.BandLow:
			keep = rec.PricePerKg.Cmp(bandLow) <= 0
		case domain.BandMid:
			keep = rec.PricePerKg.Cmp(bandLow) > 0 && rec.PricePerKg.Cmp(bandHigh) < 0
		case domain.BandHigh:
			keep = rec.PricePerKg.Cmp(bandHigh) >= 0
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

// GroupByState collapses purchase rows into one summary per state, summing
// quantities. State names are normalized before grouping; output keeps
// first-seen input order.
func GroupByState(records []domain.PurchaseRecord) []domain.RegionSummary {
	index := make(map[string]int)
	groups := make([]domain.RegionSummary, 0, len(records))
	for _, rec := range records {
		name := reconcile.Normalize(rec.StateName)
		i, ok := index[name]
		if !ok {
			index[name] = len(groups)
			groups = append(groups, domain.RegionSummary{
				StateName:  name,
				RegionCode: rec.RegionCode,
				QuantityKg: decimal.Zero,
			})
			i = index[name]
		}
		groups[i].QuantityKg = groups[i].QuantityKg.Add(rec.QuantityKg)
		if groups[i].RegionCode == "" {
			groups[i].RegionCode = rec.RegionCode
		}
	}
	return groups
}

// TopStates returns the n largest summaries by quantity, descending. The
// sort is stable so ties keep input order.
func TopStates(groups []domain.RegionSummary, n int) []domain.RegionSummary {
	ranked := make([]domain.RegionSummary, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QuantityKg.Cmp(ranked[j].QuantityKg) > 0
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Total sums quantity over the raw, ungrouped table.
func Total(records []domain.PurchaseRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.QuantityKg)
	}
	return total
}
