package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/service"
)

// NewTestRateService wires a RateService against the test database with
// the given adapter source (usually a MockAdapterSource).
func NewTestRateService(t *testing.T, db *sql.DB, adapters service.AdapterSource) *service.RateService {
	t.Helper()

	currencyRepo := repository.NewCurrencyRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	rateRepo := repository.NewRateRepository(db)

	return service.NewRateService(db, currencyRepo, organizationRepo, rateRepo, adapters)
}

func NewTestSchedulerService(t *testing.T, db *sql.DB, adapters service.AdapterSource) *service.SchedulerService {
	t.Helper()

	organizationRepo := repository.NewOrganizationRepository(db)

	return service.NewSchedulerService(organizationRepo, NewTestRateService(t, db, adapters))
}

func NewTestCurrencyService(t *testing.T, db *sql.DB) *service.CurrencyService {
	t.Helper()

	return service.NewCurrencyService(repository.NewCurrencyRepository(db))
}

func NewTestOrganizationService(t *testing.T, db *sql.DB) *service.OrganizationService {
	t.Helper()

	return service.NewOrganizationService(repository.NewOrganizationRepository(db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeOrganizationName generates a unique organization name for testing.
//
// Example usage:
//
//	name := testutil.MakeOrganizationName("Acme")
//	// Returns: "Acme ABC123"
func MakeOrganizationName(base string) string {
	if base == "" {
		base = "Organization"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
