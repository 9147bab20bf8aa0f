package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/ougirez/silverboard/internal/domain"
	"github.com/ougirez/silverboard/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

// Schema is the declared ordered list of required columns for a flat table.
// Column names match exactly after trimming; there is no fuzzy header
// sniffing.
type Schema []string

var (
	PriceSchema    = Schema{"Year", "Silver_Price_INR_per_kg"}
	PurchaseSchema = Schema{"State", "Silver_Purchased_kg"}
)

// indices validates the header against the schema and returns the position
// of every required column. A missing column is fatal for the pass.
func (s Schema) indices(source string, header []string) ([]int, error) {
	idx := make([]int, len(s))
	for i, want := range s {
		idx[i] = -1
		for j, got := range header {
			if strings.TrimSpace(got) == want {
				idx[i] = j
				break
			}
		}
		if idx[i] == -1 {
			return nil, constants.NewMissingColumnError(source, want)
		}
	}
	return idx, nil
}

func readTable(source string, data []byte, schema Schema) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", source, err)
	}
	if len(records) == 0 {
		return nil, constants.NewMissingColumnError(source, schema[0])
	}

	idx, err := schema.indices(source, records[0])
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(idx))
		for i, j := range idx {
			if j < len(rec) {
				row[i] = strings.TrimSpace(rec[j])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParsePriceCSV decodes the historical price table.
func ParsePriceCSV(source string, data []byte) ([]domain.PriceRecord, error) {
	rows, err := readTable(source, data, PriceSchema)
	if err != nil {
		return nil, err
	}

	records := make([]domain.PriceRecord, 0, len(rows))
	for i, row := range rows {
		year, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: failed to parse year %q: %w", source, i+2, row[0], err)
		}
		price, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: failed to parse price %q: %w", source, i+2, row[1], err)
		}
		records = append(records, domain.PriceRecord{Year: year, PricePerKg: price})
	}
	return records, nil
}

// ParsePurchaseCSV decodes the state-wise purchase table.
func ParsePurchaseCSV(source string, data []byte) ([]domain.PurchaseRecord, error) {
	rows, err := readTable(source, data, PurchaseSchema)
	if err != nil {
		return nil, err
	}

	records := make([]domain.PurchaseRecord, 0, len(rows))
	for i, row := range rows {
		qty, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: failed to parse quantity %q: %w", source, i+2, row[1], err)
		}
		records = append(records, domain.PurchaseRecord{StateName: row[0], QuantityKg: qty})
	}
	return records, nil
}
