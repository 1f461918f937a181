package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/provider"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/testutil"
)

func setupRateHandler(t *testing.T, adapters map[model.ProviderID]provider.Adapter) (*RateHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	source := testutil.NewMockAdapterSource(adapters)
	return NewRateHandler(
		testutil.NewTestRateService(t, db, source),
		testutil.NewTestSchedulerService(t, db, source),
	), db
}

func TestRateHandler_Rates(t *testing.T) {
	t.Run("returns stored rates", func(t *testing.T) {
		handler, db := setupRateHandler(t, nil)
		currency := testutil.CreateCurrency(t, db, "USD")
		org := testutil.NewOrganization().Build(t, db)
		testutil.NewRate(currency.ID, org.ID).WithRate(0.92).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/rates",
			map[string]string{"organizationId": org.ID})
		w := httptest.NewRecorder()

		handler.Rates(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var records []model.RateRecord
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&records)

		if len(records) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(records))
		}
		if records[0].CurrencyCode != "USD" || records[0].Rate != 0.92 {
			t.Errorf("Unexpected record: %+v", records[0])
		}
	})

	t.Run("rejects a malformed organization filter", func(t *testing.T) {
		handler, _ := setupRateHandler(t, nil)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/rates",
			map[string]string{"organizationId": "not-a-uuid"})
		w := httptest.NewRecorder()

		handler.Rates(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		handler, _ := setupRateHandler(t, nil)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/rates",
			map[string]string{"startDate": "2026-09-01", "endDate": "2026-08-01"})
		w := httptest.NewRecorder()

		handler.Rates(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestRateHandler_RefreshOrganization(t *testing.T) {
	t.Run("refreshes and reports the summary", func(t *testing.T) {
		handler, db := setupRateHandler(t, map[model.ProviderID]provider.Adapter{
			model.ProviderECB: testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08}),
		})
		testutil.CreateCurrencies(t, db, "EUR", "USD")
		org := testutil.CreateOrganization(t, db, "EUR", model.ProviderECB)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/rates/refresh/"+org.ID,
			map[string]string{"organizationId": org.ID})
		w := httptest.NewRecorder()

		handler.RefreshOrganization(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var summary model.RefreshSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&summary)

		if !summary.Success || summary.TotalUpserted != 2 {
			t.Errorf("Unexpected summary: %+v", summary)
		}
	})

	t.Run("unknown organization maps to 404", func(t *testing.T) {
		handler, _ := setupRateHandler(t, nil)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/rates/refresh/"+id,
			map[string]string{"organizationId": id})
		w := httptest.NewRecorder()

		handler.RefreshOrganization(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("unsupported base currency maps to 422", func(t *testing.T) {
		handler, db := setupRateHandler(t, map[model.ProviderID]provider.Adapter{
			model.ProviderECB: testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08}),
		})
		testutil.CreateCurrencies(t, db, "EUR", "USD", "PEN")
		org := testutil.CreateOrganization(t, db, "PEN", model.ProviderECB)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/rates/refresh/"+org.ID,
			map[string]string{"organizationId": org.ID})
		w := httptest.NewRecorder()

		handler.RefreshOrganization(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unreachable provider maps to 503", func(t *testing.T) {
		handler, db := setupRateHandler(t, map[model.ProviderID]provider.Adapter{
			model.ProviderECB: testutil.NewMockAdapter(nil).WithError(
				fmt.Errorf("ecb: timeout: %w", apperrors.ErrProviderUnavailable)),
		})
		testutil.CreateCurrencies(t, db, "EUR")
		org := testutil.CreateOrganization(t, db, "EUR", model.ProviderECB)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/rates/refresh/"+org.ID,
			map[string]string{"organizationId": org.ID})
		w := httptest.NewRecorder()

		handler.RefreshOrganization(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRateHandler_RefreshAll(t *testing.T) {
	t.Run("runs the due organizations like a scheduler tick", func(t *testing.T) {
		handler, db := setupRateHandler(t, map[model.ProviderID]provider.Adapter{
			model.ProviderECB: testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08}),
		})
		testutil.CreateCurrencies(t, db, "EUR", "USD")
		yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
		testutil.NewOrganization().
			WithIntervalUnit(model.IntervalDaily).
			WithNextExecutionDate(yesterday).
			Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/rates/refresh", nil)
		w := httptest.NewRecorder()

		handler.RefreshAll(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var summary model.RefreshSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&summary)

		if summary.TotalUpserted != 2 {
			t.Errorf("Expected 2 upserts, got %+v", summary)
		}
	})
}
