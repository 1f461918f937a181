package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/provider"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/service"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/testutil"
)

// TestNormalize tests re-basing provider results onto a base currency.
//
// WHY: Normalization is the only arithmetic between a provider payload and
// the stored rate. Getting the base pinned to exactly 1.0 and every other
// rate divided through is what makes rates from eleven differently-anchored
// sources comparable.
func TestNormalize(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	older := day.AddDate(0, 0, -1)

	t.Run("rebases values and pins the base to 1.0", func(t *testing.T) {
		result := provider.Result{
			"EUR": {Value: 1.0, Date: day},
			"USD": {Value: 1.08, Date: day},
			"GBP": {Value: 0.85, Date: older},
		}

		normalized, err := service.Normalize(result, "USD")
		if err != nil {
			t.Fatalf("Normalize() returned unexpected error: %v", err)
		}

		if len(normalized) != len(result) {
			t.Errorf("Expected %d entries, got %d", len(result), len(normalized))
		}
		if got := normalized["USD"].Value; got != 1.0 {
			t.Errorf("Expected base rate exactly 1.0, got %v", got)
		}
		if got, want := normalized["EUR"].Value, 1.0/1.08; got != want {
			t.Errorf("Expected EUR %v, got %v", want, got)
		}
		if got, want := normalized["GBP"].Value, 0.85/1.08; got != want {
			t.Errorf("Expected GBP %v, got %v", want, got)
		}
	})

	t.Run("preserves observation dates", func(t *testing.T) {
		result := provider.Result{
			"EUR": {Value: 1.0, Date: day},
			"GBP": {Value: 0.85, Date: older},
		}

		normalized, err := service.Normalize(result, "EUR")
		if err != nil {
			t.Fatalf("Normalize() returned unexpected error: %v", err)
		}

		if !normalized["GBP"].Date.Equal(older) {
			t.Errorf("Expected GBP date %v, got %v", older, normalized["GBP"].Date)
		}
		if !normalized["EUR"].Date.Equal(day) {
			t.Errorf("Expected EUR date %v, got %v", day, normalized["EUR"].Date)
		}
	})

	t.Run("empty result normalizes to empty result", func(t *testing.T) {
		normalized, err := service.Normalize(provider.Result{}, "EUR")
		if err != nil {
			t.Fatalf("Normalize() returned unexpected error: %v", err)
		}
		if len(normalized) != 0 {
			t.Errorf("Expected empty result, got %d entries", len(normalized))
		}
	})

	t.Run("missing base currency fails hard", func(t *testing.T) {
		result := provider.Result{
			"USD": {Value: 1.08, Date: day},
		}

		_, err := service.Normalize(result, "PEN")
		if !errors.Is(err, apperrors.ErrBaseCurrencyUnsupported) {
			t.Errorf("Expected ErrBaseCurrencyUnsupported, got %v", err)
		}
	})

	t.Run("zero-valued base currency fails hard", func(t *testing.T) {
		result := provider.Result{
			"EUR": {Value: 0, Date: day},
			"USD": {Value: 1.08, Date: day},
		}

		_, err := service.Normalize(result, "EUR")
		if !errors.Is(err, apperrors.ErrBaseCurrencyUnsupported) {
			t.Errorf("Expected ErrBaseCurrencyUnsupported, got %v", err)
		}
	})
}

// TestGroupByProvider tests the partitioning of organizations into
// provider groups.
//
// WHY: The grouping is what caps external traffic at one fetch per
// provider per cycle regardless of how many organizations share it.
func TestGroupByProvider(t *testing.T) {
	t.Run("groups organizations sharing a provider", func(t *testing.T) {
		orgs := []model.Organization{
			{ID: "1", Provider: model.ProviderECB},
			{ID: "2", Provider: model.ProviderBanxico},
			{ID: "3", Provider: model.ProviderECB},
		}

		groups := service.GroupByProvider(orgs)

		if len(groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(groups))
		}
		if len(groups[model.ProviderECB]) != 2 {
			t.Errorf("Expected 2 ECB organizations, got %d", len(groups[model.ProviderECB]))
		}
		if len(groups[model.ProviderBanxico]) != 1 {
			t.Errorf("Expected 1 banxico organization, got %d", len(groups[model.ProviderBanxico]))
		}
	})

	t.Run("drops organizations without a provider", func(t *testing.T) {
		orgs := []model.Organization{
			{ID: "1", Provider: ""},
			{ID: "2", Provider: model.ProviderECB},
		}

		groups := service.GroupByProvider(orgs)

		if len(groups) != 1 {
			t.Fatalf("Expected 1 group, got %d", len(groups))
		}
		if len(groups[model.ProviderECB]) != 1 {
			t.Errorf("Expected 1 ECB organization, got %d", len(groups[model.ProviderECB]))
		}
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		if groups := service.GroupByProvider(nil); len(groups) != 0 {
			t.Errorf("Expected no groups, got %d", len(groups))
		}
	})
}

// TestRateService_RefreshOrganizations tests the full refresh cycle
// against the store with mock adapters.
//
// WHY: The cycle combines fetching, normalization and transactional
// upserts; these tests pin the guarantees the rest of the system leans
// on, such as single fetches per provider and survival of partial
// provider outages.
func TestRateService_RefreshOrganizations(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches each provider once regardless of group size", func(t *testing.T) {
		for _, orgCount := range []int{1, 3, 10} {
			t.Run(fmt.Sprintf("%d organizations", orgCount), func(t *testing.T) {
				db := testutil.SetupTestDB(t)
				testutil.CreateCurrencies(t, db, "EUR", "USD")

				orgs := make([]model.Organization, 0, orgCount)
				for i := 0; i < orgCount; i++ {
					orgs = append(orgs, testutil.CreateOrganization(t, db, "EUR", model.ProviderECB))
				}

				mock := testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08})
				svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(
					map[model.ProviderID]provider.Adapter{model.ProviderECB: mock}))

				summary, err := svc.RefreshOrganizations(ctx, orgs)
				if err != nil {
					t.Fatalf("RefreshOrganizations() returned unexpected error: %v", err)
				}

				if mock.Calls() != 1 {
					t.Errorf("Expected exactly 1 fetch, got %d", mock.Calls())
				}
				if !summary.Success {
					t.Errorf("Expected Success=true, got summary %+v", summary)
				}
				if want := orgCount * 2; summary.TotalUpserted != want {
					t.Errorf("Expected %d upserts, got %d", want, summary.TotalUpserted)
				}
			})
		}
	})

	t.Run("running twice keeps one record per currency and date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateCurrencies(t, db, "EUR", "USD")
		org := testutil.CreateOrganization(t, db, "EUR", model.ProviderECB)

		mock := testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08})
		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(
			map[model.ProviderID]provider.Adapter{model.ProviderECB: mock}))

		for i := 0; i < 2; i++ {
			if _, err := svc.RefreshOrganizations(ctx, []model.Organization{org}); err != nil {
				t.Fatalf("RefreshOrganizations() run %d returned unexpected error: %v", i+1, err)
			}
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM currency_rate`).Scan(&count); err != nil {
			t.Fatalf("Failed to count rate records: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 rate records after two runs, got %d", count)
		}
	})

	t.Run("re-observed value overwrites the stored one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateCurrencies(t, db, "EUR", "USD")
		org := testutil.CreateOrganization(t, db, "EUR", model.ProviderECB)

		source := testutil.NewMockAdapterSource(map[model.ProviderID]provider.Adapter{
			model.ProviderECB: testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08}),
		})
		svc := testutil.NewTestRateService(t, db, source)
		if _, err := svc.RefreshOrganizations(ctx, []model.Organization{org}); err != nil {
			t.Fatalf("RefreshOrganizations() returned unexpected error: %v", err)
		}

		// Same date, corrected value: last write wins.
		source.Adapters[model.ProviderECB] = testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.10})
		if _, err := svc.RefreshOrganizations(ctx, []model.Organization{org}); err != nil {
			t.Fatalf("RefreshOrganizations() returned unexpected error: %v", err)
		}

		rateRepo := repository.NewRateRepository(db)
		records, err := rateRepo.GetRates(ctx, repository.RateFilter{OrganizationID: org.ID, CurrencyCode: "USD"})
		if err != nil {
			t.Fatalf("GetRates() returned unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("Expected 1 USD record, got %d", len(records))
		}
		if records[0].Rate != 1.10 {
			t.Errorf("Expected overwritten rate 1.10, got %v", records[0].Rate)
		}
	})

	t.Run("one failing provider does not sink the others", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateCurrencies(t, db, "EUR", "USD", "PLN")
		healthy := testutil.CreateOrganization(t, db, "EUR", model.ProviderECB)
		broken := testutil.CreateOrganization(t, db, "PLN", model.ProviderNBP)

		ecbMock := testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08})
		nbpMock := testutil.NewMockAdapter(nil).WithError(
			fmt.Errorf("nbp: connection refused: %w", apperrors.ErrProviderUnavailable))

		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(
			map[model.ProviderID]provider.Adapter{
				model.ProviderECB: ecbMock,
				model.ProviderNBP: nbpMock,
			}))

		summary, err := svc.RefreshOrganizations(ctx, []model.Organization{healthy, broken})
		if err != nil {
			t.Fatalf("RefreshOrganizations() returned unexpected error: %v", err)
		}

		if summary.Success {
			t.Error("Expected Success=false with a failed provider group")
		}
		if summary.TotalFailed != 1 {
			t.Errorf("Expected 1 failed group, got %d", summary.TotalFailed)
		}
		if summary.TotalUpserted != 2 {
			t.Errorf("Expected the healthy group's 2 upserts, got %d", summary.TotalUpserted)
		}

		// The healthy organization's records committed.
		rateRepo := repository.NewRateRepository(db)
		records, err := rateRepo.GetRates(ctx, repository.RateFilter{OrganizationID: healthy.ID})
		if err != nil {
			t.Fatalf("GetRates() returned unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("Expected 2 committed records for the healthy organization, got %d", len(records))
		}
	})

	t.Run("missing base currency aborts with a hard error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateCurrencies(t, db, "EUR", "USD", "PEN")
		org := testutil.CreateOrganization(t, db, "PEN", model.ProviderECB)

		mock := testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08})
		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(
			map[model.ProviderID]provider.Adapter{model.ProviderECB: mock}))

		_, err := svc.RefreshOrganizations(ctx, []model.Organization{org})
		if !errors.Is(err, apperrors.ErrBaseCurrencyUnsupported) {
			t.Errorf("Expected ErrBaseCurrencyUnsupported, got %v", err)
		}
	})

	t.Run("unknown codes from the provider are skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateCurrencies(t, db, "EUR")
		org := testutil.CreateOrganization(t, db, "EUR", model.ProviderECB)

		// XYZ is not in the catalog.
		mock := testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "XYZ": 42.0})
		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(
			map[model.ProviderID]provider.Adapter{model.ProviderECB: mock}))

		summary, err := svc.RefreshOrganizations(ctx, []model.Organization{org})
		if err != nil {
			t.Fatalf("RefreshOrganizations() returned unexpected error: %v", err)
		}
		if summary.TotalUpserted != 1 {
			t.Errorf("Expected only the EUR upsert, got %d", summary.TotalUpserted)
		}
	})

	t.Run("no organizations is a successful no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(nil))

		summary, err := svc.RefreshOrganizations(ctx, nil)
		if err != nil {
			t.Fatalf("RefreshOrganizations() returned unexpected error: %v", err)
		}
		if !summary.Success || summary.TotalUpserted != 0 {
			t.Errorf("Expected successful empty summary, got %+v", summary)
		}
	})
}

// TestRateService_RefreshOrganization tests the manual single-organization
// refresh path.
//
// WHY: The "update now" button is the one place a provider outage must
// surface to the user instead of being swallowed into a summary flag.
func TestRateService_RefreshOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshes one organization", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateCurrencies(t, db, "EUR", "USD")
		org := testutil.CreateOrganization(t, db, "EUR", model.ProviderECB)

		mock := testutil.NewMockAdapter(map[string]float64{"EUR": 1.0, "USD": 1.08})
		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(
			map[model.ProviderID]provider.Adapter{model.ProviderECB: mock}))

		summary, err := svc.RefreshOrganization(ctx, org.ID)
		if err != nil {
			t.Fatalf("RefreshOrganization() returned unexpected error: %v", err)
		}
		if summary.TotalUpserted != 2 {
			t.Errorf("Expected 2 upserts, got %d", summary.TotalUpserted)
		}
	})

	t.Run("unknown organization", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(nil))

		_, err := svc.RefreshOrganization(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrOrganizationNotFound) {
			t.Errorf("Expected ErrOrganizationNotFound, got %v", err)
		}
	})

	t.Run("organization without a provider", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		org := testutil.NewOrganization().WithoutProvider().Build(t, db)

		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(nil))

		_, err := svc.RefreshOrganization(ctx, org.ID)
		if !errors.Is(err, apperrors.ErrProviderNotConfigured) {
			t.Errorf("Expected ErrProviderNotConfigured, got %v", err)
		}
	})

	t.Run("unreachable provider surfaces as an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateCurrencies(t, db, "EUR")
		org := testutil.CreateOrganization(t, db, "EUR", model.ProviderECB)

		mock := testutil.NewMockAdapter(nil).WithError(
			fmt.Errorf("ecb: timeout: %w", apperrors.ErrProviderUnavailable))
		svc := testutil.NewTestRateService(t, db, testutil.NewMockAdapterSource(
			map[model.ProviderID]provider.Adapter{model.ProviderECB: mock}))

		_, err := svc.RefreshOrganization(ctx, org.ID)
		if !errors.Is(err, apperrors.ErrProviderUnavailable) {
			t.Errorf("Expected ErrProviderUnavailable, got %v", err)
		}
	})
}
