// Package provider contains the adapters for the supported exchange-rate
// sources. Every adapter fetches rates from one remote endpoint and
// normalizes them into a Result: currency code -> (rate, observation date),
// where rates are expressed relative to the adapter's native anchor
// currency so that dividing a foreign amount by its rate yields
// anchor-currency units. Re-basing onto an organization's base currency
// happens later, in the service layer.
//
// Failure semantics are uniform: connection errors, non-2xx responses and
// unparsable payloads all collapse into an error wrapping
// apperrors.ErrProviderUnavailable. An empty Result with a nil error is a
// valid outcome when the source supports none of the requested currencies.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
)

// Rate is one provider observation: the value of a currency relative to
// the provider's anchor, attributed to a calendar date.
type Rate struct {
	Value float64
	Date  time.Time
}

// Result maps currency codes to fetched rates. Results live only for the
// duration of one refresh cycle and are never persisted directly.
type Result map[string]Rate

// Adapter is the uniform contract every provider implements.
//
// Fetch returns rates for the requested currency codes. Codes the source
// does not publish are simply absent from the result; an empty result is
// not an error. Any transport or parse problem is reported as an error
// wrapping apperrors.ErrProviderUnavailable.
type Adapter interface {
	Fetch(ctx context.Context, currencies []string) (Result, error)
}

// unavailable wraps err into the uniform soft-failure error for a provider.
func unavailable(provider string, err error) error {
	return fmt.Errorf("%s: %v: %w", provider, err, apperrors.ErrProviderUnavailable)
}

// newHTTPClient returns the HTTP client used by all adapters: a bounded
// overall timeout and no automatic retries. A failed attempt is a failure
// for the whole cycle; the next scheduled run retries.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// fetchBody performs a GET request and returns the response body.
// Non-2xx responses are treated as errors. The User-Agent mimics a
// browser: several government endpoints reject the default Go agent.
func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json, text/html, application/xml, text/xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// requestedSet turns the requested currency slice into a set for O(1)
// membership checks during parsing.
func requestedSet(currencies []string) map[string]bool {
	set := make(map[string]bool, len(currencies))
	for _, code := range currencies {
		set[code] = true
	}
	return set
}

// today returns midnight UTC of the current day, the fallback observation
// date for sources that publish no usable date of their own.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// todayIn returns midnight of the current day on the given clock. Sources
// with regulatory day boundaries (Mexico City, Lima, Santiago) attribute
// rates by their local calendar, not UTC.
func todayIn(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
