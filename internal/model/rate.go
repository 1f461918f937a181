package model

import "time"

// RateRecord represents a persisted exchange rate observation: the value
// of one currency relative to an organization's base currency on a given
// date. The base currency's own record for any date is always exactly 1.0.
//
// Uniqueness invariant: at most one RateRecord exists per
// (currency, organization, date) triple. Refreshes update the stored rate
// in place rather than inserting duplicates.
type RateRecord struct {
	ID             string    `json:"id"`
	CurrencyID     string    `json:"currencyId"`
	CurrencyCode   string    `json:"currencyCode,omitempty"` // populated on reads that join the currency table
	OrganizationID string    `json:"organizationId"`
	Date           time.Time `json:"date"`
	Rate           float64   `json:"rate"`
}

// RefreshSummary reports the outcome of one refresh cycle across all
// provider groups. Success is true only if every provider group succeeded;
// a single unreachable provider flips it to false while the remaining
// groups still commit their rates.
type RefreshSummary struct {
	Success       bool                    `json:"success"`
	Providers     []ProviderRefreshResult `json:"providers"`
	TotalUpserted int                     `json:"totalUpserted"` // rate records created or updated across all groups
	TotalFailed   int                     `json:"totalFailed"`   // provider groups that hit a soft failure
}

// ProviderRefreshResult describes the outcome for a single provider group
// within a refresh cycle.
type ProviderRefreshResult struct {
	Provider      ProviderID `json:"provider"`
	Organizations int        `json:"organizations"` // organizations served by this group
	RatesUpserted int        `json:"ratesUpserted"`
	Error         string     `json:"error,omitempty"` // soft failure message, empty on success
}
