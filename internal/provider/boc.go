package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"
)

const bocDefaultURL = "https://www.bankofcanada.ca/valet/observations/group/FX_RATES_DAILY/json"

// BOCAdapter fetches the Bank of Canada daily exchange rate series.
// Observations quote CAD per 1 unit of the foreign currency under keys of
// the form "FXUSDCAD"; the stored rate is the inverse, with CAD as the
// anchor. Only the most recent observation date in the response is used.
type BOCAdapter struct {
	httpClient *http.Client
	baseURL    string
}

// NewBOCAdapter creates an adapter for the Bank of Canada Valet API.
func NewBOCAdapter(timeout time.Duration) *BOCAdapter {
	return &BOCAdapter{
		httpClient: newHTTPClient(timeout),
		baseURL:    bocDefaultURL,
	}
}

type bocResponse struct {
	// Each observation carries a "d" date plus one {"v": "..."} object per
	// series key, so the value type varies per key.
	Observations []map[string]json.RawMessage `json:"observations"`
}

type bocValue struct {
	V string `json:"v"`
}

// Fetch implements Adapter.
func (a *BOCAdapter) Fetch(ctx context.Context, currencies []string) (Result, error) {
	body, err := fetchBody(ctx, a.httpClient, a.baseURL)
	if err != nil {
		return nil, unavailable("boc", err)
	}

	var response bocResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, unavailable("boc", err)
	}
	if len(response.Observations) == 0 {
		return nil, unavailable("boc", fmt.Errorf("no observations in response"))
	}

	// Find the observation for the most recent date. Dates are ISO
	// formatted, so lexicographic order is chronological.
	var dates []string
	byDate := make(map[string]map[string]json.RawMessage, len(response.Observations))
	for _, obs := range response.Observations {
		var d string
		if err := json.Unmarshal(obs["d"], &d); err != nil {
			return nil, unavailable("boc", err)
		}
		dates = append(dates, d)
		byDate[d] = obs
	}
	sort.Strings(dates)
	lastObs := byDate[dates[len(dates)-1]]

	requested := requestedSet(currencies)
	date := today()
	result := Result{}
	if requested["CAD"] {
		result["CAD"] = Rate{Value: 1.0, Date: date}
	}

	for _, code := range currencies {
		raw, ok := lastObs[fmt.Sprintf("FX%sCAD", code)]
		if !ok {
			continue
		}
		var value bocValue
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, unavailable("boc", err)
		}
		cadPerUnit, err := strconv.ParseFloat(value.V, 64)
		if err != nil || cadPerUnit == 0 {
			return nil, unavailable("boc", fmt.Errorf("bad rate %q for %s", value.V, code))
		}
		result[code] = Rate{Value: 1.0 / cadPerUnit, Date: date}
	}

	return result, nil
}
