package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	bcrpDefaultURL = "https://estadisticas.bcrp.gob.pe/estadisticas/series/api"

	// Response period names look like "10.Jan.24".
	bcrpDateFormat = "02.Jan.06"
)

// bcrpSeries maps currency codes to the BCRP statistical series carrying
// the banking-system sell rate for that currency.
var bcrpSeries = map[string]string{
	"USD": "PD04640PD",
	"EUR": "PD04648PD",
}

// BCRPAdapter fetches rates from the Central Reserve Bank of Peru.
// Series quote PEN per 1 foreign unit; the stored rate is the inverse
// with PEN as the anchor. The bank skips days without publication, so the
// query spans a lookback window and the most recent published value wins.
// A failure on one series is logged and skipped rather than failing the
// whole fetch, matching how sparsely the series are published.
type BCRPAdapter struct {
	httpClient   *http.Client
	baseURL      string
	lookbackDays int
	location     *time.Location
}

// NewBCRPAdapter creates an adapter for the BCRP statistics API.
// lookbackDays bounds how far back the adapter searches for the most
// recent published observation; gaps of up to five days occur in practice.
func NewBCRPAdapter(lookbackDays int, timeout time.Duration) *BCRPAdapter {
	if lookbackDays < 1 {
		lookbackDays = 7
	}
	loc, err := time.LoadLocation("America/Lima")
	if err != nil {
		loc = time.UTC
	}
	return &BCRPAdapter{
		httpClient:   newHTTPClient(timeout),
		baseURL:      bcrpDefaultURL,
		lookbackDays: lookbackDays,
		location:     loc,
	}
}

type bcrpResponse struct {
	Periods []struct {
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"periods"`
}

// Fetch implements Adapter.
func (a *BCRPAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	requested := requestedSet(currencies)
	if !requested["PEN"] {
		// Without PEN tracked there is nothing to anchor against.
		return Result{}, nil
	}

	now := time.Now().In(a.location)
	start := now.AddDate(0, 0, -a.lookbackDays).Format("2006-01-02")
	end := now.Format("2006-01-02")

	result := Result{
		"PEN": {Value: 1.0, Date: todayIn(a.location)},
	}

	for code, series := range bcrpSeries {
		if !requested[code] {
			continue
		}

		requestURL := fmt.Sprintf("%s/%s/json/%s/%s/ing", a.baseURL, series, start, end)
		body, err := fetchBody(ctx, a.httpClient, requestURL)
		if err != nil {
			log.Printf("bcrp: fetching %s series %s: %v", code, series, err)
			continue
		}

		var response bcrpResponse
		if err := json.Unmarshal(body, &response); err != nil {
			log.Printf("bcrp: decoding %s series %s: %v", code, series, err)
			continue
		}
		if len(response.Periods) == 0 {
			continue
		}

		last := response.Periods[len(response.Periods)-1]
		if len(last.Values) == 0 {
			continue
		}
		penPerUnit, err := strconv.ParseFloat(last.Values[0], 64)
		if err != nil || penPerUnit == 0 {
			continue
		}

		// The API abbreviates September as "Set" in its English output.
		dateName := strings.Replace(last.Name, "Set", "Sep", 1)
		observed, err := time.Parse(bcrpDateFormat, dateName)
		if err != nil {
			log.Printf("bcrp: parsing period date %q: %v", last.Name, err)
			continue
		}

		result[code] = Rate{Value: 1.0 / penPerUnit, Date: observed}
	}

	return result, nil
}
