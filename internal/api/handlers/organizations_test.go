package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/request"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/response"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/testutil"
)

func setupOrganizationHandler(t *testing.T) (*OrganizationHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewOrganizationHandler(testutil.NewTestOrganizationService(t, db)), db
}

// withOrganizationID attaches a chi route parameter to a request that
// already carries a body.
func withOrganizationID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("organizationId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestOrganizationHandler_CreateOrganization(t *testing.T) {
	t.Run("creates an organization with defaults from the country", func(t *testing.T) {
		handler, _ := setupOrganizationHandler(t)

		req := testutil.NewRequestWithJSONBody(t, http.MethodPost, "/api/organizations",
			request.CreateOrganizationRequest{
				Name:         "Acme Mexico",
				CountryCode:  "MX",
				BaseCurrency: "MXN",
			})
		w := httptest.NewRecorder()

		handler.CreateOrganization(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var org model.Organization
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&org)

		if org.Provider != model.ProviderBanxico {
			t.Errorf("Expected the country default provider banxico, got %q", org.Provider)
		}
		if org.IntervalUnit != model.IntervalManually {
			t.Errorf("Expected manual cadence by default, got %q", org.IntervalUnit)
		}
	})

	t.Run("rejects a missing base currency with field details", func(t *testing.T) {
		handler, _ := setupOrganizationHandler(t)

		req := testutil.NewRequestWithJSONBody(t, http.MethodPost, "/api/organizations",
			request.CreateOrganizationRequest{Name: "Acme"})
		w := httptest.NewRecorder()

		handler.CreateOrganization(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var errResp response.ErrorResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&errResp)

		details, ok := errResp.Details.(map[string]interface{})
		if !ok {
			t.Fatalf("Expected field details in the error response, got %v", errResp.Details)
		}
		if _, found := details["baseCurrency"]; !found {
			t.Errorf("Expected a baseCurrency field error, got %v", details)
		}
	})

	t.Run("rejects an unknown provider", func(t *testing.T) {
		handler, _ := setupOrganizationHandler(t)

		req := testutil.NewRequestWithJSONBody(t, http.MethodPost, "/api/organizations",
			request.CreateOrganizationRequest{
				Name:         "Acme",
				BaseCurrency: "EUR",
				Provider:     "imaginary_bank",
			})
		w := httptest.NewRecorder()

		handler.CreateOrganization(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		handler, _ := setupOrganizationHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/organizations", nil)
		w := httptest.NewRecorder()

		handler.CreateOrganization(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestOrganizationHandler_Organization(t *testing.T) {
	t.Run("returns the organization", func(t *testing.T) {
		handler, db := setupOrganizationHandler(t)
		created := testutil.NewOrganization().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/organizations/"+created.ID,
			map[string]string{"organizationId": created.ID})
		w := httptest.NewRecorder()

		handler.Organization(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var org model.Organization
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&org)

		if org.ID != created.ID || org.Name != created.Name {
			t.Errorf("Expected the created organization, got %+v", org)
		}
	})

	t.Run("unknown organization maps to 404", func(t *testing.T) {
		handler, _ := setupOrganizationHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/organizations/"+id,
			map[string]string{"organizationId": id})
		w := httptest.NewRecorder()

		handler.Organization(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestOrganizationHandler_UpdateSettings(t *testing.T) {
	t.Run("updates provider and cadence", func(t *testing.T) {
		handler, db := setupOrganizationHandler(t)
		created := testutil.NewOrganization().Build(t, db)

		req := testutil.NewRequestWithJSONBody(t, http.MethodPut,
			"/api/organizations/"+created.ID+"/settings",
			request.UpdateOrganizationSettingsRequest{
				BaseCurrency: "USD",
				Provider:     string(model.ProviderBOC),
				IntervalUnit: model.IntervalWeekly,
			})
		req = withOrganizationID(req, created.ID)
		w := httptest.NewRecorder()

		handler.UpdateSettings(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var org model.Organization
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&org)

		if org.BaseCurrency != "USD" || org.Provider != model.ProviderBOC {
			t.Errorf("Expected updated settings, got %+v", org)
		}
		if org.NextExecutionDate == nil {
			t.Error("Expected a planted next execution date for the weekly cadence")
		}
	})

	t.Run("unknown organization maps to 404", func(t *testing.T) {
		handler, _ := setupOrganizationHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithJSONBody(t, http.MethodPut,
			"/api/organizations/"+id+"/settings",
			request.UpdateOrganizationSettingsRequest{
				BaseCurrency: "EUR",
				IntervalUnit: model.IntervalDaily,
			})
		req = withOrganizationID(req, id)
		w := httptest.NewRecorder()

		handler.UpdateSettings(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}
