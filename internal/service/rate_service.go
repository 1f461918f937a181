package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/provider"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
)

// AdapterSource resolves provider identifiers to adapters. Satisfied by
// provider.Registry; tests substitute mock adapters through it.
type AdapterSource interface {
	Get(id model.ProviderID) (provider.Adapter, error)
}

// RateService runs the exchange-rate ingestion pipeline: it groups
// organizations by provider, fetches each provider once per cycle,
// re-bases the fetched rates onto each organization's base currency and
// upserts them into the historical rate store.
type RateService struct {
	db           *sql.DB
	currencyRepo *repository.CurrencyRepository
	orgRepo      *repository.OrganizationRepository
	rateRepo     *repository.RateRepository
	adapters     AdapterSource
}

// NewRateService creates a new RateService with the provided dependencies.
func NewRateService(
	db *sql.DB,
	currencyRepo *repository.CurrencyRepository,
	orgRepo *repository.OrganizationRepository,
	rateRepo *repository.RateRepository,
	adapters AdapterSource,
) *RateService {
	return &RateService{
		db:           db,
		currencyRepo: currencyRepo,
		orgRepo:      orgRepo,
		rateRepo:     rateRepo,
		adapters:     adapters,
	}
}

// GroupByProvider partitions organizations by their configured provider.
// Organizations without a provider are dropped. The grouping drives the
// "one external call per provider per cycle" guarantee: each group is
// fetched once and the result fanned out to every organization in it.
func GroupByProvider(orgs []model.Organization) map[model.ProviderID][]model.Organization {
	groups := make(map[model.ProviderID][]model.Organization)
	for _, org := range orgs {
		if org.Provider == "" {
			continue
		}
		groups[org.Provider] = append(groups[org.Provider], org)
	}
	return groups
}

// Normalize re-bases a provider result onto the given base currency so
// that the base currency's own rate becomes exactly 1.0 and every other
// rate is expressed relative to it. Dates are preserved.
//
// An empty result normalizes to an empty result. A non-empty result
// without an entry for the base currency fails with
// apperrors.ErrBaseCurrencyUnsupported: the organization's provider
// cannot serve its base currency and the user must pick another one.
func Normalize(result provider.Result, baseCurrency string) (provider.Result, error) {
	if len(result) == 0 {
		return provider.Result{}, nil
	}

	base, ok := result[baseCurrency]
	if !ok || base.Value == 0 {
		return nil, fmt.Errorf("base currency %s is not supported by this exchange rate provider, please choose another one: %w",
			baseCurrency, apperrors.ErrBaseCurrencyUnsupported)
	}

	normalized := make(provider.Result, len(result))
	for code, rate := range result {
		normalized[code] = provider.Rate{Value: rate.Value / base.Value, Date: rate.Date}
	}

	return normalized, nil
}

// groupFetch carries one provider group through the fetch phase.
type groupFetch struct {
	provider model.ProviderID
	orgs     []model.Organization
	adapter  provider.Adapter
	result   provider.Result
	err      error
}

// RefreshOrganizations runs one refresh cycle over the given
// organizations. Each provider group is fetched exactly once; fetches run
// concurrently since adapters share no state, while all store writes stay
// sequential, each organization's upserts inside one transaction.
//
// A soft failure (provider unreachable or unparsable) marks that group
// failed in the summary and the cycle continues with the remaining
// groups. Hard errors — an unknown or unconfigured provider, a base
// currency the provider does not serve, a store error — abort the cycle
// and are returned; groups already applied keep their committed rates.
func (s *RateService) RefreshOrganizations(ctx context.Context, orgs []model.Organization) (model.RefreshSummary, error) {
	summary := model.RefreshSummary{Success: true}

	groups := GroupByProvider(orgs)
	if len(groups) == 0 {
		return summary, nil
	}

	currencies, err := s.currencyRepo.GetActiveCurrencies()
	if err != nil {
		return summary, err
	}
	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		codes = append(codes, c.Code)
	}

	ids := make([]model.ProviderID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	// Resolve every adapter before fetching anything: a misconfigured
	// provider is a hard error and should fail the cycle up front.
	fetches := make([]*groupFetch, 0, len(ids))
	for _, id := range ids {
		adapter, err := s.adapters.Get(id)
		if err != nil {
			return summary, err
		}
		fetches = append(fetches, &groupFetch{provider: id, orgs: groups[id], adapter: adapter})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range fetches {
		f := f
		g.Go(func() error {
			f.result, f.err = f.adapter.Fetch(gctx, codes)
			return nil
		})
	}
	// Fetch outcomes, including failures, land in the groupFetch entries.
	_ = g.Wait()

	for _, f := range fetches {
		groupResult := model.ProviderRefreshResult{
			Provider:      f.provider,
			Organizations: len(f.orgs),
		}

		if f.err != nil {
			log.Printf("unable to reach exchange rate provider %s, the web service may be temporarily down: %v", f.provider, f.err)
			groupResult.Error = f.err.Error()
			summary.Success = false
			summary.TotalFailed++
			summary.Providers = append(summary.Providers, groupResult)
			continue
		}

		for _, org := range f.orgs {
			normalized, err := Normalize(f.result, org.BaseCurrency)
			if err != nil {
				return summary, fmt.Errorf("organization %s: %w", org.Name, err)
			}

			count, err := s.applyRates(ctx, org, normalized)
			if err != nil {
				return summary, fmt.Errorf("organization %s: %w", org.Name, err)
			}
			groupResult.RatesUpserted += count
		}

		summary.TotalUpserted += groupResult.RatesUpserted
		summary.Providers = append(summary.Providers, groupResult)
	}

	return summary, nil
}

// RefreshOrganization runs a refresh for a single organization, the
// "update now" path. Unlike the scheduled batch, an unreachable provider
// surfaces as an error here so the caller can tell the user to retry.
func (s *RateService) RefreshOrganization(ctx context.Context, organizationID string) (model.RefreshSummary, error) {
	org, err := s.orgRepo.GetByID(organizationID)
	if err != nil {
		return model.RefreshSummary{}, err
	}
	if org.Provider == "" {
		return model.RefreshSummary{}, fmt.Errorf("organization %s has no exchange rate provider selected: %w",
			org.Name, apperrors.ErrProviderNotConfigured)
	}

	summary, err := s.RefreshOrganizations(ctx, []model.Organization{org})
	if err != nil {
		return summary, err
	}
	if !summary.Success {
		return summary, fmt.Errorf("%s: %w", org.Provider, apperrors.ErrProviderUnavailable)
	}

	return summary, nil
}

// applyRates upserts one organization's normalized rates inside a single
// transaction: one record per (currency, date), updated in place when it
// already exists. Codes absent from the currency catalog are skipped;
// providers routinely publish more currencies than the system tracks.
// Returns the number of records created or updated.
func (s *RateService) applyRates(ctx context.Context, org model.Organization, rates provider.Result) (int, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	// Resolve catalog entries before the transaction starts so no reads
	// interleave with the write connection.
	type resolvedRate struct {
		currencyID string
		rate       provider.Rate
	}
	resolved := make([]resolvedRate, 0, len(rates))
	for code, rate := range rates {
		currency, err := s.currencyRepo.GetByCode(code)
		if err != nil {
			return 0, err
		}
		if currency == nil {
			continue
		}
		resolved = append(resolved, resolvedRate{currencyID: currency.ID, rate: rate})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin rate upsert transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	rateRepo := s.rateRepo.WithTx(tx)
	count := 0

	for _, entry := range resolved {
		existing, err := rateRepo.Find(ctx, entry.currencyID, org.ID, entry.rate.Date)
		if err != nil {
			return 0, err
		}

		if existing != nil {
			if err := rateRepo.UpdateValue(ctx, existing.ID, entry.rate.Value); err != nil {
				return 0, err
			}
		} else {
			if _, err := rateRepo.Create(ctx, entry.currencyID, org.ID, entry.rate.Date, entry.rate.Value); err != nil {
				return 0, err
			}
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rate upserts: %w", err)
	}

	return count, nil
}

// GetRates retrieves stored rate records matching the filter.
func (s *RateService) GetRates(ctx context.Context, filter repository.RateFilter) ([]model.RateRecord, error) {
	return s.rateRepo.GetRates(ctx, filter)
}
