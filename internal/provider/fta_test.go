package provider

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const ftaTestFeed = `<?xml version="1.0" encoding="UTF-8"?>
<wechselkurse>
	<devise code="usd">
		<waehrung>1 USD</waehrung>
		<kurs>0.9042</kurs>
	</devise>
	<devise code="jpy">
		<waehrung>100 JPY</waehrung>
		<kurs>0.5661</kurs>
	</devise>
</wechselkurse>`

func TestFTAAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ftaTestFeed)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	adapter := NewFTAAdapter(time.Second)
	adapter.baseURL = server.URL

	result, err := adapter.Fetch(context.Background(), []string{"CHF", "USD", "JPY"})
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}

	t.Run("CHF is the anchor", func(t *testing.T) {
		if result["CHF"].Value != 1.0 {
			t.Errorf("Expected CHF 1.0, got %v", result["CHF"].Value)
		}
	})

	t.Run("single-unit quote inverts directly", func(t *testing.T) {
		if want := 1.0 / 0.9042; math.Abs(result["USD"].Value-want) > 1e-12 {
			t.Errorf("Expected USD %v, got %v", want, result["USD"].Value)
		}
	})

	t.Run("unit count from the description scales the rate", func(t *testing.T) {
		// 100 JPY = 0.5661 CHF, so 1 CHF = 100/0.5661 JPY.
		if want := 100.0 / 0.5661; math.Abs(result["JPY"].Value-want) > 1e-9 {
			t.Errorf("Expected JPY %v, got %v", want, result["JPY"].Value)
		}
	})
}
