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

const cbegyDefaultURL = "https://www.cbe.org.eg/en/EconomicResearch/Statistics/Pages/OfficialRatesListing.aspx"

// CBEGYAdapter scrapes the Central Bank of Egypt official rates listing.
// Rows carry a free-text currency description plus separate buy and sell
// rates quoted as EGP per 1 foreign unit; the stored rate inverts the
// buy/sell average, with EGP as the anchor. Unmapped rows are skipped.
type CBEGYAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewCBEGYAdapter creates an adapter for the Central Bank of Egypt page.
func NewCBEGYAdapter(timeout time.Duration) *CBEGYAdapter {
	return &CBEGYAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    cbegyDefaultURL,
	}
}

// Fetch implements Adapter.
func (a *CBEGYAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	body, err := fetchBody(ctx, a.httpClient, a.baseURL)
	if err != nil {
		return nil, unavailable("cbegy", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, unavailable("cbegy", err)
	}

	requested := requestedSet(currencies)
	date := today()
	result := Result{}
	for _, tbody := range findNodes(doc, nodeSelector{Tag: atom.Tbody}) {
		// Row layout: currency description, buy rate, sell rate.
		for _, cells := range tableRows(tbody) {
			if len(cells) < 3 {
				continue
			}
			code, ok := LookupCurrencyName(cells[0])
			if !ok || !requested[code] {
				continue
			}
			buy, errBuy := strconv.ParseFloat(cells[1], 64)
			sell, errSell := strconv.ParseFloat(cells[2], 64)
			if errBuy != nil || errSell != nil {
				continue
			}
			egpPerUnit := (buy + sell) / 2
			if egpPerUnit == 0 {
				continue
			}
			result[code] = Rate{Value: 1.0 / egpPerUnit, Date: date}
		}
	}

	if requested["EGP"] {
		result["EGP"] = Rate{Value: 1.0, Date: date}
	}

	return result, nil
}
