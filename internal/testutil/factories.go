package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
)

// CurrencyBuilder provides a fluent interface for creating test currencies.
//
// Example usage:
//
//	currency := testutil.NewCurrency("EUR").Build(t, db)
//	inactive := testutil.NewCurrency("UTM").Inactive().Build(t, db)
type CurrencyBuilder struct {
	ID       string
	Code     string
	Name     string
	IsActive bool
}

// NewCurrency creates a CurrencyBuilder with sensible defaults.
func NewCurrency(code string) *CurrencyBuilder {
	return &CurrencyBuilder{
		ID:       MakeID(),
		Code:     code,
		Name:     code + " test currency",
		IsActive: true,
	}
}

// WithName sets a custom name.
func (b *CurrencyBuilder) WithName(name string) *CurrencyBuilder {
	b.Name = name
	return b
}

// Inactive marks the currency as inactive.
func (b *CurrencyBuilder) Inactive() *CurrencyBuilder {
	b.IsActive = false
	return b
}

// Build creates the currency in the database and returns it.
func (b *CurrencyBuilder) Build(t *testing.T, db *sql.DB) model.Currency {
	t.Helper()

	query := `
		INSERT INTO currency (id, code, name, is_active)
		VALUES (?, ?, ?, ?)
	`

	if _, err := db.Exec(query, b.ID, b.Code, b.Name, b.IsActive); err != nil {
		t.Fatalf("Failed to create test currency: %v", err)
	}

	return model.Currency{
		ID:       b.ID,
		Code:     b.Code,
		Name:     b.Name,
		IsActive: b.IsActive,
	}
}

// OrganizationBuilder provides a fluent interface for creating test organizations.
//
// Example usage:
//
//	org := testutil.NewOrganization().
//	    WithBaseCurrency("USD").
//	    WithProvider(model.ProviderECB).
//	    WithIntervalUnit(model.IntervalDaily).
//	    Build(t, db)
type OrganizationBuilder struct {
	ID                string
	Name              string
	CountryCode       string
	BaseCurrency      string
	Provider          model.ProviderID
	IntervalUnit      string
	NextExecutionDate *time.Time
}

// NewOrganization creates an OrganizationBuilder with sensible defaults.
func NewOrganization() *OrganizationBuilder {
	return &OrganizationBuilder{
		ID:           MakeID(),
		Name:         MakeOrganizationName("Test Organization"),
		CountryCode:  "NL",
		BaseCurrency: "EUR",
		Provider:     model.ProviderECB,
		IntervalUnit: model.IntervalManually,
	}
}

// WithID sets a custom ID.
func (b *OrganizationBuilder) WithID(id string) *OrganizationBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *OrganizationBuilder) WithName(name string) *OrganizationBuilder {
	b.Name = name
	return b
}

// WithCountryCode sets a custom country code.
func (b *OrganizationBuilder) WithCountryCode(code string) *OrganizationBuilder {
	b.CountryCode = code
	return b
}

// WithBaseCurrency sets a custom base currency.
func (b *OrganizationBuilder) WithBaseCurrency(code string) *OrganizationBuilder {
	b.BaseCurrency = code
	return b
}

// WithProvider sets a custom provider.
func (b *OrganizationBuilder) WithProvider(p model.ProviderID) *OrganizationBuilder {
	b.Provider = p
	return b
}

// WithoutProvider clears the provider selection.
func (b *OrganizationBuilder) WithoutProvider() *OrganizationBuilder {
	b.Provider = ""
	return b
}

// WithIntervalUnit sets a custom refresh cadence.
func (b *OrganizationBuilder) WithIntervalUnit(unit string) *OrganizationBuilder {
	b.IntervalUnit = unit
	return b
}

// WithNextExecutionDate sets the next scheduled refresh date.
func (b *OrganizationBuilder) WithNextExecutionDate(date time.Time) *OrganizationBuilder {
	b.NextExecutionDate = &date
	return b
}

// Build creates the organization in the database and returns it.
func (b *OrganizationBuilder) Build(t *testing.T, db *sql.DB) model.Organization {
	t.Helper()

	query := `
		INSERT INTO organization (id, name, country_code, base_currency, provider, interval_unit, next_execution_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var provider any
	if b.Provider != "" {
		provider = string(b.Provider)
	}
	var nextExecution any
	if b.NextExecutionDate != nil {
		nextExecution = b.NextExecutionDate.Format("2006-01-02")
	}

	_, err := db.Exec(query, b.ID, b.Name, b.CountryCode, b.BaseCurrency, provider, b.IntervalUnit, nextExecution)
	if err != nil {
		t.Fatalf("Failed to create test organization: %v", err)
	}

	return model.Organization{
		ID:                b.ID,
		Name:              b.Name,
		CountryCode:       b.CountryCode,
		BaseCurrency:      b.BaseCurrency,
		Provider:          b.Provider,
		IntervalUnit:      b.IntervalUnit,
		NextExecutionDate: b.NextExecutionDate,
	}
}

// RateBuilder provides a fluent interface for creating test rate records.
type RateBuilder struct {
	ID             string
	CurrencyID     string
	OrganizationID string
	Date           time.Time
	Rate           float64
}

// NewRate creates a RateBuilder for the given currency and organization.
func NewRate(currencyID, organizationID string) *RateBuilder {
	return &RateBuilder{
		ID:             MakeID(),
		CurrencyID:     currencyID,
		OrganizationID: organizationID,
		Date:           time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Rate:           1.0,
	}
}

// WithDate sets a custom date.
func (b *RateBuilder) WithDate(date time.Time) *RateBuilder {
	b.Date = date
	return b
}

// WithRate sets a custom rate value.
func (b *RateBuilder) WithRate(rate float64) *RateBuilder {
	b.Rate = rate
	return b
}

// Build creates the rate record in the database and returns it.
func (b *RateBuilder) Build(t *testing.T, db *sql.DB) model.RateRecord {
	t.Helper()

	query := `
		INSERT INTO currency_rate (id, currency_id, organization_id, date, rate)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.CurrencyID, b.OrganizationID, b.Date.Format("2006-01-02"), b.Rate)
	if err != nil {
		t.Fatalf("Failed to create test rate: %v", err)
	}

	return model.RateRecord{
		ID:             b.ID,
		CurrencyID:     b.CurrencyID,
		OrganizationID: b.OrganizationID,
		Date:           b.Date,
		Rate:           b.Rate,
	}
}

// Convenience functions

// CreateCurrency creates an active currency with the given code.
func CreateCurrency(t *testing.T, db *sql.DB, code string) model.Currency {
	t.Helper()
	return NewCurrency(code).Build(t, db)
}

// CreateCurrencies creates active currencies for every given code.
func CreateCurrencies(t *testing.T, db *sql.DB, codes ...string) []model.Currency {
	t.Helper()
	currencies := make([]model.Currency, 0, len(codes))
	for _, code := range codes {
		currencies = append(currencies, CreateCurrency(t, db, code))
	}
	return currencies
}

// CreateOrganization creates an organization with the given base currency
// and provider, manual cadence.
func CreateOrganization(t *testing.T, db *sql.DB, baseCurrency string, provider model.ProviderID) model.Organization {
	t.Helper()
	return NewOrganization().WithBaseCurrency(baseCurrency).WithProvider(provider).Build(t, db)
}
