package provider

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"
)

const ecbDefaultURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"

// ECBAdapter fetches the European Central Bank daily reference rates.
// Rates are quoted as foreign units per 1 EUR; EUR is the anchor.
type ECBAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewECBAdapter creates an adapter for the ECB daily reference rate feed.
func NewECBAdapter(timeout time.Duration) *ECBAdapter {
	return &ECBAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    ecbDefaultURL,
	}
}

// ecbEnvelope maps the eurofxref XML: a triply nested Cube where the
// middle level carries the observation date and the leaves carry one
// currency each.
type ecbEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Cube    struct {
		Day struct {
			Time  string `xml:"time,attr"`
			Rates []struct {
				Currency string  `xml:"currency,attr"`
				Rate     float64 `xml:"rate,attr"`
			} `xml:"Cube"`
		} `xml:"Cube"`
	} `xml:"Cube"`
}

// Fetch implements Adapter.
func (a *ECBAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	body, err := fetchBody(ctx, a.httpClient, a.baseURL)
	if err != nil {
		return nil, unavailable("ecb", err)
	}

	var envelope ecbEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, unavailable("ecb", err)
	}

	date, err := time.Parse("2006-01-02", envelope.Cube.Day.Time)
	if err != nil {
		return nil, unavailable("ecb", err)
	}

	requested := requestedSet(currencies)
	result := Result{}
	for _, entry := range envelope.Cube.Day.Rates {
		if requested[entry.Currency] {
			result[entry.Currency] = Rate{Value: entry.Rate, Date: date}
		}
	}

	if len(result) > 0 && requested["EUR"] {
		result["EUR"] = Rate{Value: 1.0, Date: date}
	}

	return result, nil
}
