// Package apperrors defines the sentinel errors shared across the
// application layers. Handlers and the refresh orchestrator use errors.Is
// against these values to decide between soft (retry-later) and hard
// (configuration) failure paths.
package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrOrganizationNotFound indicates that an organization with the given ID does not exist.
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrCurrencyNotFound indicates that a currency with the given code does not exist.
	ErrCurrencyNotFound = errors.New("currency not found")

	// ErrRateNotFound indicates no rate record for a specific currency, organization and date.
	ErrRateNotFound = errors.New("currency rate not found")
)

// Provider errors cover the exchange-rate ingestion pipeline. The soft /
// hard distinction matters: soft failures mark a provider group as failed
// but let the batch continue; hard failures abort the run and must reach
// the user unchanged.
var (
	// ErrProviderUnavailable is the soft failure: the remote source could not
	// be reached, answered with a non-2xx status, or returned a payload that
	// could not be parsed. Retrying on the next cycle is the only remedy.
	ErrProviderUnavailable = errors.New("exchange rate provider unavailable")

	// ErrBaseCurrencyUnsupported is the hard failure raised when a provider's
	// result carries rates but none for the organization's base currency.
	// The organization must be reconfigured with a different provider.
	ErrBaseCurrencyUnsupported = errors.New("base currency not supported by provider")

	// ErrProviderNotConfigured indicates a provider that needs explicit
	// configuration (an access token) before it can be used.
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrProviderUnknown indicates a provider identifier outside the closed
	// set of supported providers.
	ErrProviderUnknown = errors.New("unknown exchange rate provider")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g. start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidIntervalUnit indicates a refresh cadence outside
	// manually/daily/weekly/monthly.
	ErrInvalidIntervalUnit = errors.New("invalid interval unit")

	// ErrInvalidCurrencyCode indicates a currency code that does not match
	// the expected short uppercase form.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)
