package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	banxicoDefaultURL = "https://www.banxico.org.mx/SieAPIRest/service/v1"

	// Rates on the SIE feed carry day-month-year dates.
	banxicoDateFormat = "02/01/2006"
)

// banxicoSeries maps SIE series identifiers to currency codes. The feed
// exposes rates per series, not per currency; SF60653 is the USD rate the
// Mexican tax authority prescribes.
var banxicoSeries = map[string]string{
	"SF46410": "EUR",
	"SF60632": "CAD",
	"SF46406": "JPY",
	"SF46407": "GBP",
	"SF60653": "USD",
}

// BanxicoAdapter fetches rates from the Bank of Mexico SIE API. The feed
// quotes MXN per 1 foreign unit; the stored rate is the inverse with MXN
// as the anchor. Mexican regulation dates each day's applicable rate to
// the previous banking day, so the query window spans yesterday to today
// on the Mexico City clock and each observation keeps its own feed date.
//
// The SIE API requires a personal access token; the adapter is only
// constructed once one is configured.
type BanxicoAdapter struct {
	httpClient *http.Client
	baseURL    string
	token      string
	location   *time.Location
}

// NewBanxicoAdapter creates an adapter for the Banxico SIE API using the
// given access token.
func NewBanxicoAdapter(token string, timeout time.Duration) *BanxicoAdapter {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		loc = time.UTC
	}
	return &BanxicoAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    banxicoDefaultURL,
		token:      token,
		location:   loc,
	}
}

type banxicoResponse struct {
	BMX struct {
		Series []struct {
			ID     string `json:"idSerie"`
			Points []struct {
				Date  string `json:"fecha"`
				Value string `json:"dato"`
			} `json:"datos"`
		} `json:"series"`
	} `json:"bmx"`
}

// Fetch implements Adapter.
func (a *BanxicoAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	ids := make([]string, 0, len(banxicoSeries))
	for id := range banxicoSeries {
		ids = append(ids, id)
	}

	now := time.Now().In(a.location)
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	todayStr := now.Format("2006-01-02")

	requestURL := fmt.Sprintf("%s/series/%s/datos/%s/%s?token=%s",
		a.baseURL, strings.Join(ids, ","), yesterday, todayStr, url.QueryEscape(a.token))

	body, err := fetchBody(ctx, a.httpClient, requestURL)
	if err != nil {
		return nil, unavailable("banxico", err)
	}

	var response banxicoResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, unavailable("banxico", err)
	}

	requested := requestedSet(currencies)
	result := Result{}
	if requested["MXN"] {
		result["MXN"] = Rate{Value: 1.0, Date: todayIn(a.location)}
	}

	for _, series := range response.BMX.Series {
		code, ok := banxicoSeries[series.ID]
		if !ok || !requested[code] {
			continue
		}
		// Later points win: the feed lists observations oldest first.
		for _, point := range series.Points {
			mxnPerUnit, err := strconv.ParseFloat(point.Value, 64)
			if err != nil || mxnPerUnit == 0 {
				// "N/E" marks days without a published value.
				continue
			}
			date, err := time.Parse(banxicoDateFormat, point.Date)
			if err != nil {
				continue
			}
			result[code] = Rate{Value: 1.0 / mxnPerUnit, Date: date}
		}
	}

	return result, nil
}
