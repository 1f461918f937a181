package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const ftaDefaultURL = "https://www.backend-rates.bazg.admin.ch/api/xmldaily?d=today&locale=en"

var ftaUnitsPattern = regexp.MustCompile(`\d+`)

// FTAAdapter fetches daily rates from the Swiss Federal Tax
// Administration. Each entry quotes CHF per N units of the foreign
// currency (the unit count is embedded in the "waehrung" text, e.g.
// "100 JPY"), so the stored rate is units/kurs. CHF is the anchor.
type FTAAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewFTAAdapter creates an adapter for the Swiss FTA daily rate feed.
func NewFTAAdapter(timeout time.Duration) *FTAAdapter {
	return &FTAAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    ftaDefaultURL,
	}
}

type ftaRates struct {
	XMLName xml.Name `xml:"wechselkurse"`
	Devises []struct {
		Code     string `xml:"code,attr"`
		Waehrung string `xml:"waehrung"`
		Kurs     string `xml:"kurs"`
	} `xml:"devise"`
}

// Fetch implements Adapter.
func (a *FTAAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	body, err := fetchBody(ctx, a.httpClient, a.baseURL)
	if err != nil {
		return nil, unavailable("fta", err)
	}

	var rates ftaRates
	if err := xml.Unmarshal(body, &rates); err != nil {
		return nil, unavailable("fta", err)
	}

	requested := requestedSet(currencies)
	date := today()
	result := Result{}
	for _, devise := range rates.Devises {
		code := strings.ToUpper(devise.Code)
		if !requested[code] {
			continue
		}

		unitsText := ftaUnitsPattern.FindString(devise.Waehrung)
		if unitsText == "" {
			return nil, unavailable("fta", fmt.Errorf("no unit count in %q", devise.Waehrung))
		}
		units, err := strconv.ParseFloat(unitsText, 64)
		if err != nil {
			return nil, unavailable("fta", err)
		}
		kurs, err := strconv.ParseFloat(strings.TrimSpace(devise.Kurs), 64)
		if err != nil || kurs == 0 {
			return nil, unavailable("fta", fmt.Errorf("bad rate %q for %s", devise.Kurs, code))
		}

		result[code] = Rate{Value: units / kurs, Date: date}
	}

	if requested["CHF"] {
		result["CHF"] = Rate{Value: 1.0, Date: date}
	}

	return result, nil
}
