package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const mindicadorDefaultURL = "https://mindicador.cl/api"

// mindicadorIndicators maps currency codes to the indicator names the
// mindicador.cl API exposes. UF and UTM are Chilean indexation units
// published as daily/monthly indicators alongside real currencies.
var mindicadorIndicators = map[string]string{
	"USD": "dolar",
	"EUR": "euro",
	"UF":  "uf",
	"UTM": "utm",
}

// MindicadorAdapter fetches Chilean indicators from mindicador.cl.
// Values are quoted as CLP per unit; the stored rate is the inverse with
// CLP as the anchor. One request is made per requested indicator.
type MindicadorAdapter struct {
	httpClient *http.Client
	baseURL    string
	location   *time.Location
}

// NewMindicadorAdapter creates an adapter for the mindicador.cl API.
// An empty baseURL selects the public endpoint.
func NewMindicadorAdapter(baseURL string, timeout time.Duration) *MindicadorAdapter {
	if baseURL == "" {
		baseURL = mindicadorDefaultURL
	}
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		loc = time.UTC
	}
	return &MindicadorAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    strings.TrimRight(baseURL, "/"),
		location:   loc,
	}
}

type mindicadorResponse struct {
	Serie []struct {
		Date  string  `json:"fecha"`
		Value float64 `json:"valor"`
	} `json:"serie"`
}

// Fetch implements Adapter.
func (a *MindicadorAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	requested := requestedSet(currencies)
	date := todayIn(a.location)

	result := Result{
		"CLP": {Value: 1.0, Date: date},
	}
	if !requested["CLP"] {
		delete(result, "CLP")
	}

	requestDate := time.Now().In(a.location).Format("02-01-2006")
	for code, indicator := range mindicadorIndicators {
		if !requested[code] {
			continue
		}

		body, err := fetchBody(ctx, a.httpClient, fmt.Sprintf("%s/%s/%s", a.baseURL, indicator, requestDate))
		if err != nil {
			return nil, unavailable("mindicador", err)
		}
		// The API answers errors as HTML pages with a 200 status.
		if strings.Contains(string(body), "html") {
			return nil, unavailable("mindicador", fmt.Errorf("%s: got HTML instead of JSON", indicator))
		}

		var response mindicadorResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, unavailable("mindicador", err)
		}
		if len(response.Serie) == 0 {
			// UTM has one value per month; a day without a value is normal.
			continue
		}

		point := response.Serie[0]
		if point.Value == 0 {
			continue
		}
		observed, err := time.Parse("2006-01-02", point.Date[:min(10, len(point.Date))])
		if err != nil {
			return nil, unavailable("mindicador", err)
		}
		result[code] = Rate{Value: 1.0 / point.Value, Date: observed}
	}

	return result, nil
}
