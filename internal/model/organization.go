package model

import "time"

// ProviderID identifies one of the supported exchange-rate providers.
// The set is closed: adding a provider means adding an adapter and a
// registry entry, not a configuration value.
type ProviderID string

// Supported exchange rate providers.
const (
	ProviderECB        ProviderID = "ecb"        // European Central Bank
	ProviderFTA        ProviderID = "fta"        // Swiss Federal Tax Administration
	ProviderBanxico    ProviderID = "banxico"    // Bank of Mexico
	ProviderBOC        ProviderID = "boc"        // Bank of Canada
	ProviderXE         ProviderID = "xe_com"     // xe.com currency tables
	ProviderBNR        ProviderID = "bnr"        // National Bank of Romania
	ProviderMindicador ProviderID = "mindicador" // Chilean mindicador.cl
	ProviderBCRP       ProviderID = "bcrp"       // Central Reserve Bank of Peru
	ProviderCBUAE      ProviderID = "cbuae"      // UAE Central Bank
	ProviderCBEGY      ProviderID = "cbegy"      // Central Bank of Egypt
	ProviderNBP        ProviderID = "nbp"        // National Bank of Poland
)

// AllProviders lists every supported provider identifier.
var AllProviders = []ProviderID{
	ProviderECB,
	ProviderFTA,
	ProviderBanxico,
	ProviderBOC,
	ProviderXE,
	ProviderBNR,
	ProviderMindicador,
	ProviderBCRP,
	ProviderCBUAE,
	ProviderCBEGY,
	ProviderNBP,
}

// Valid reports whether p is one of the supported provider identifiers.
func (p ProviderID) Valid() bool {
	for _, id := range AllProviders {
		if p == id {
			return true
		}
	}
	return false
}

// countryProviders maps a country code to the provider organizations in
// that country typically want, because the provider publishes rates
// against that country's currency.
var countryProviders = map[string]ProviderID{
	"AE": ProviderCBUAE,
	"CA": ProviderBOC,
	"CH": ProviderFTA,
	"CL": ProviderMindicador,
	"EG": ProviderCBEGY,
	"MX": ProviderBanxico,
	"PE": ProviderBCRP,
	"RO": ProviderBNR,
	"PL": ProviderNBP,
}

// DefaultProviderForCountry returns the provider to preselect for an
// organization in the given country. Falls back to the ECB.
func DefaultProviderForCountry(countryCode string) ProviderID {
	if p, ok := countryProviders[countryCode]; ok {
		return p
	}
	return ProviderECB
}

// Refresh cadence values for Organization.IntervalUnit.
const (
	IntervalManually = "manually"
	IntervalDaily    = "daily"
	IntervalWeekly   = "weekly"
	IntervalMonthly  = "monthly"
)

// ValidIntervalUnit reports whether unit is a supported refresh cadence.
func ValidIntervalUnit(unit string) bool {
	switch unit {
	case IntervalManually, IntervalDaily, IntervalWeekly, IntervalMonthly:
		return true
	}
	return false
}

// Organization is an entity whose books need exchange rates. Each
// organization designates a base currency (stored rates are relative to
// it, base = 1.0), a rate provider and a refresh cadence.
type Organization struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	CountryCode       string     `json:"countryCode"`
	BaseCurrency      string     `json:"baseCurrency"`
	Provider          ProviderID `json:"provider"` // empty means no provider configured
	IntervalUnit      string     `json:"intervalUnit"`
	NextExecutionDate *time.Time `json:"nextExecutionDate,omitempty"`
}
