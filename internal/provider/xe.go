package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const xeDefaultURL = "https://www.xe.com"

// XEAdapter scrapes the xe.com currency tables. The site has no API, so
// the adapter extracts the "units per USD" column from the HTML table.
// USD is a purely arbitrary anchor; normalization removes it anyway.
type XEAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewXEAdapter creates an adapter for the xe.com currency tables page.
func NewXEAdapter(timeout time.Duration) *XEAdapter {
	return &XEAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    xeDefaultURL,
	}
}

// Fetch implements Adapter.
func (a *XEAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	body, err := fetchBody(ctx, a.httpClient, fmt.Sprintf("%s/currencytables/?from=USD", a.baseURL))
	if err != nil {
		return nil, unavailable("xe_com", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, unavailable("xe_com", err)
	}

	sections := findNodes(doc, nodeSelector{Tag: atom.Div, Attr: "id", Val: "table-section"})
	if len(sections) == 0 {
		return nil, unavailable("xe_com", fmt.Errorf("rate table not found in page"))
	}

	requested := requestedSet(currencies)
	date := today()
	result := Result{}
	if requested["USD"] {
		result["USD"] = Rate{Value: 1.0, Date: date}
	}

	// Row layout: code, currency name, units per USD, USD per unit.
	for _, cells := range tableRows(sections[0]) {
		if len(cells) < 3 {
			continue
		}
		code := strings.TrimSpace(cells[0])
		if !requested[code] {
			continue
		}
		unitsPerUSD, err := strconv.ParseFloat(strings.ReplaceAll(cells[2], ",", ""), 64)
		if err != nil || unitsPerUSD == 0 {
			continue
		}
		result[code] = Rate{Value: unitsPerUSD, Date: date}
	}

	return result, nil
}
