package provider

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const banxicoTestFeed = `{
	"bmx": {
		"series": [
			{
				"idSerie": "SF60653",
				"datos": [
					{"fecha": "27/08/2026", "dato": "18.6544"},
					{"fecha": "28/08/2026", "dato": "18.7021"}
				]
			},
			{
				"idSerie": "SF46410",
				"datos": [
					{"fecha": "28/08/2026", "dato": "N/E"}
				]
			}
		]
	}
}`

func TestBanxicoAdapter_Fetch(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		w.Write([]byte(banxicoTestFeed)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	adapter := NewBanxicoAdapter("sie-token", time.Second)
	adapter.baseURL = server.URL

	result, err := adapter.Fetch(context.Background(), []string{"MXN", "USD", "EUR"})
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}

	t.Run("sends the access token", func(t *testing.T) {
		if gotToken != "sie-token" {
			t.Errorf("Expected token in query, got %q", gotToken)
		}
	})

	t.Run("latest published value wins, inverted against MXN", func(t *testing.T) {
		if want := 1.0 / 18.7021; math.Abs(result["USD"].Value-want) > 1e-12 {
			t.Errorf("Expected USD %v, got %v", want, result["USD"].Value)
		}
		wantDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
		if !result["USD"].Date.Equal(wantDate) {
			t.Errorf("Expected feed date %v, got %v", wantDate, result["USD"].Date)
		}
	})

	t.Run("unpublished N/E values are skipped", func(t *testing.T) {
		if _, ok := result["EUR"]; ok {
			t.Errorf("Expected no EUR rate from an N/E series, got %v", result["EUR"])
		}
	})

	t.Run("MXN is the anchor", func(t *testing.T) {
		if result["MXN"].Value != 1.0 {
			t.Errorf("Expected MXN 1.0, got %v", result["MXN"].Value)
		}
	})
}
