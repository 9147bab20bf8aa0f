package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/silverboard/internal/domain"
	"github.com/ougirez/silverboard/internal/pkg/dataset"
	"github.com/ougirez/silverboard/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service refreshes the in-memory price dataset from a published HTML table.
// Nothing is persisted; a restart reverts to the flat file.
type Service struct {
	loader *dataset.Loader
}

func NewIngestService(loader *dataset.Loader) *Service {
	return &Service{loader: loader}
}

// BackfillPrices fetches sourceURL, parses the first table with Year and
// price columns, and replaces the cached price dataset with the result.
func (s *Service) BackfillPrices(ctx context.Context, sourceURL string) ([]domain.PriceRecord, error) {
	var resp *http.Response
	err := backoff.Retry(
		func() error {
			var httpErr error

			resp, httpErr = http.Get(sourceURL)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			if resp.StatusCode != http.StatusOK {
				_ = resp.Body.Close()
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	records, err := parsePriceTable(doc)
	if err != nil {
		return nil, fmt.Errorf("parsePriceTable: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no price rows found at %s", sourceURL)
	}

	s.loader.ReplacePrices(records)
	logger.Infof(ctx, "backfilled %d price rows from %s", len(records), sourceURL)

	return records, nil
}

func parsePriceTable(doc *goquery.Document) ([]domain.PriceRecord, error) {
	records := make([]domain.PriceRecord, 0, 32)

	var err error
	doc.Find("table tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("th, td")
		if cells.Length() < 2 {
			// header or decorative row
			return true
		}

		yearStr := strings.TrimSpace(cells.Eq(0).Text())
		year, parseErr := strconv.Atoi(yearStr)
		if parseErr != nil {
			// column header row
			return true
		}

		priceStr := strings.TrimSpace(cells.Eq(1).Text())
		priceStr = strings.ReplaceAll(priceStr, ",", "")
		price, parseErr := decimal.NewFromString(priceStr)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse price %q for year %d: %w", priceStr, year, parseErr)
			return false
		}

		records = append(records, domain.PriceRecord{Year: year, PricePerKg: price})
		return true
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
