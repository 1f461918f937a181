package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/testutil"
)

func TestCurrencyHandler_Currencies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewCurrencyHandler(testutil.NewTestCurrencyService(t, db))

	testutil.CreateCurrencies(t, db, "USD", "EUR")
	testutil.NewCurrency("UTM").Inactive().Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/currencies", nil)
	w := httptest.NewRecorder()

	handler.Currencies(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var currencies []model.Currency
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&currencies)

	if len(currencies) != 2 {
		t.Fatalf("Expected the 2 active currencies, got %d", len(currencies))
	}
	if currencies[0].Code != "EUR" || currencies[1].Code != "USD" {
		t.Errorf("Expected codes ordered ascending, got %s, %s", currencies[0].Code, currencies[1].Code)
	}
}
