package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const bnrDefaultURL = "https://www.bnr.ro/nbrfxrates.xml"

// BNRAdapter fetches daily rates from the National Bank of Romania.
// Entries quote RON per multiplier units of the foreign currency; the
// stored rate is multiplier/value with RON as the anchor. The table is
// dated as issued, but Romanian accounting uses the previous day's
// closing rate, so the observation date is shifted forward by one day.
type BNRAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewBNRAdapter creates an adapter for the BNR daily rate feed.
func NewBNRAdapter(timeout time.Duration) *BNRAdapter {
	return &BNRAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    bnrDefaultURL,
	}
}

type bnrDataSet struct {
	XMLName xml.Name `xml:"DataSet"`
	Body    struct {
		Cube struct {
			Date  string `xml:"date,attr"`
			Rates []struct {
				Currency   string `xml:"currency,attr"`
				Multiplier string `xml:"multiplier,attr"`
				Value      string `xml:",chardata"`
			} `xml:"Rate"`
		} `xml:"Cube"`
	} `xml:"Body"`
}

// Fetch implements Adapter.
func (a *BNRAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	body, err := fetchBody(ctx, a.httpClient, a.baseURL)
	if err != nil {
		return nil, unavailable("bnr", err)
	}

	var dataSet bnrDataSet
	if err := xml.Unmarshal(body, &dataSet); err != nil {
		return nil, unavailable("bnr", err)
	}

	tableDate, err := time.Parse("2006-01-02", dataSet.Body.Cube.Date)
	if err != nil {
		return nil, unavailable("bnr", err)
	}
	date := tableDate.AddDate(0, 0, 1)

	requested := requestedSet(currencies)
	result := Result{}
	for _, entry := range dataSet.Body.Cube.Rates {
		if !requested[entry.Currency] {
			continue
		}

		multiplier := 1.0
		if entry.Multiplier != "" {
			multiplier, err = strconv.ParseFloat(entry.Multiplier, 64)
			if err != nil {
				return nil, unavailable("bnr", err)
			}
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(entry.Value), 64)
		if err != nil || value == 0 {
			return nil, unavailable("bnr", fmt.Errorf("bad rate %q for %s", entry.Value, entry.Currency))
		}

		result[entry.Currency] = Rate{Value: multiplier / value, Date: date}
	}

	if len(result) > 0 && requested["RON"] {
		result["RON"] = Rate{Value: 1.0, Date: date}
	}

	return result, nil
}
