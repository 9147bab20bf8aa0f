package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func statLocal(location string) (time.Time, error) {
	info, err := os.Stat(location)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// readSource returns the raw bytes of a local file or an http(s) resource,
// plus the file's modification time for local sources.
func readSource(ctx context.Context, location string) ([]byte, time.Time, error) {
	if isRemote(location) {
		data, err := fetchRemote(ctx, location)
		return data, time.Time{}, err
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to stat %s: %w", location, err)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read %s: %w", location, err)
	}

	return data, info.ModTime(), nil
}

func fetchRemote(ctx context.Context, url string) (data []byte, err error) {
	var resp *http.Response
	err = backoff.Retry(
		func() error {
			var httpErr error

			resp, httpErr = http.Get(url)
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
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 3),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close body: %w", closeErr)
		}
	}()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	return data, nil
}
