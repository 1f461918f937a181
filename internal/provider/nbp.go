package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const nbpDefaultURL = "https://api.nbp.pl/api"

// NBPAdapter fetches average exchange rate tables from the National Bank
// of Poland. Table A carries the common currencies, table B the exotic
// ones; the adapter reads A first and only consults B for codes still
// unmatched. Rates quote PLN per 1 foreign unit; the stored rate is the
// inverse with PLN as the anchor. For tax purposes Polish bookkeeping
// uses the previous day's rate, so the effective date is shifted forward
// by one day.
type NBPAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewNBPAdapter creates an adapter for the NBP exchange rate API.
func NewNBPAdapter(timeout time.Duration) *NBPAdapter {
	return &NBPAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    nbpDefaultURL,
	}
}

type nbpTable struct {
	EffectiveDate string `json:"effectiveDate"`
	Rates         []struct {
		Code string  `json:"code"`
		Mid  float64 `json:"mid"`
	} `json:"rates"`
}

// Fetch implements Adapter.
func (a *NBPAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	remaining := requestedSet(currencies)
	result := Result{}

	for _, tableType := range []string{"A", "B"} {
		if len(remaining) == 0 {
			break
		}

		requestURL := fmt.Sprintf("%s/exchangerates/tables/%s/?format=json", a.baseURL, tableType)
		body, err := fetchBody(ctx, a.httpClient, requestURL)
		if err != nil {
			return nil, unavailable("nbp", err)
		}

		var tables []nbpTable
		if err := json.Unmarshal(body, &tables); err != nil {
			return nil, unavailable("nbp", err)
		}

		for _, table := range tables {
			effective, err := time.Parse("2006-01-02", table.EffectiveDate)
			if err != nil {
				return nil, unavailable("nbp", err)
			}
			date := effective.AddDate(0, 0, 1)

			if _, ok := result["PLN"]; !ok && remaining["PLN"] {
				result["PLN"] = Rate{Value: 1.0, Date: date}
				delete(remaining, "PLN")
			}

			for _, entry := range table.Rates {
				if !remaining[entry.Code] || entry.Mid == 0 {
					continue
				}
				result[entry.Code] = Rate{Value: 1.0 / entry.Mid, Date: date}
				delete(remaining, entry.Code)
			}
		}
	}

	return result, nil
}
