package provider

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
)

func TestMindicadorAdapter_Fetch(t *testing.T) {
	t.Run("fetches one indicator per requested currency", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.Contains(r.URL.Path, "/dolar/"):
				w.Write([]byte(`{"serie": [{"fecha": "2026-08-28T04:00:00.000Z", "valor": 934.52}]}`)) //nolint:errcheck
			case strings.Contains(r.URL.Path, "/utm/"):
				// UTM publishes monthly; an empty day is normal.
				w.Write([]byte(`{"serie": []}`)) //nolint:errcheck
			default:
				http.NotFound(w, r)
			}
		}))
		t.Cleanup(server.Close)

		adapter := NewMindicadorAdapter(server.URL, time.Second)

		result, err := adapter.Fetch(context.Background(), []string{"CLP", "USD", "UTM"})
		if err != nil {
			t.Fatalf("Fetch() returned unexpected error: %v", err)
		}

		if result["CLP"].Value != 1.0 {
			t.Errorf("Expected CLP anchor 1.0, got %v", result["CLP"].Value)
		}
		if want := 1.0 / 934.52; math.Abs(result["USD"].Value-want) > 1e-12 {
			t.Errorf("Expected USD %v, got %v", want, result["USD"].Value)
		}
		wantDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
		if !result["USD"].Date.Equal(wantDate) {
			t.Errorf("Expected indicator date %v, got %v", wantDate, result["USD"].Date)
		}
		if _, ok := result["UTM"]; ok {
			t.Error("Expected no UTM rate from an empty series")
		}
	})

	t.Run("HTML error page behind a 200 is a soft failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body>We are down</body></html>`)) //nolint:errcheck
		}))
		t.Cleanup(server.Close)

		adapter := NewMindicadorAdapter(server.URL, time.Second)

		_, err := adapter.Fetch(context.Background(), []string{"CLP", "USD"})
		if !errors.Is(err, apperrors.ErrProviderUnavailable) {
			t.Errorf("Expected ErrProviderUnavailable, got %v", err)
		}
	})
}
