package provider

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const cbuaeDefaultURL = "https://centralbank.ae/umbraco/Surface/Exchange/GetExchangeRateAllCurrency"

// CBUAEAdapter scrapes the UAE Central Bank exchange rate table. Rows
// carry a free-text currency description (English or Arabic, resolved
// through the name table) and a rate quoted as AED per 1 foreign unit;
// the stored rate is the inverse with AED as the anchor. Rows whose
// description has no known code are skipped, as the bank publishes more
// currencies than the catalog tracks.
type CBUAEAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewCBUAEAdapter creates an adapter for the UAE Central Bank rate page.
func NewCBUAEAdapter(timeout time.Duration) *CBUAEAdapter {
	return &CBUAEAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    cbuaeDefaultURL,
	}
}

// Fetch implements Adapter.
func (a *CBUAEAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	body, err := fetchBody(ctx, a.httpClient, a.baseURL)
	if err != nil {
		return nil, unavailable("cbuae", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, unavailable("cbuae", err)
	}

	requested := requestedSet(currencies)
	date := today()
	result := Result{}
	for _, tbody := range findNodes(doc, nodeSelector{Tag: atom.Tbody}) {
		// Row layout: hidden cell, currency description, rate.
		for _, cells := range tableRows(tbody) {
			if len(cells) < 3 {
				continue
			}
			code, ok := LookupCurrencyName(cells[1])
			if !ok || !requested[code] {
				continue
			}
			aedPerUnit, err := strconv.ParseFloat(cells[2], 64)
			if err != nil || aedPerUnit == 0 {
				continue
			}
			result[code] = Rate{Value: 1.0 / aedPerUnit, Date: date}
		}
	}

	if requested["AED"] {
		result["AED"] = Rate{Value: 1.0, Date: date}
	}

	return result, nil
}
