package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/request"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
)

// Codes like UF and UTM run longer than the ISO 4217 three letters, so
// the catalog accepts up to five.
var currencyCodePattern = regexp.MustCompile(`^[A-Z]{2,5}$`)

var countryCodePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)

func ValidateCreateOrganization(req request.CreateOrganizationRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.BaseCurrency) == "" {
		errors["baseCurrency"] = "base currency is required"
	} else if !currencyCodePattern.MatchString(strings.ToUpper(req.BaseCurrency)) {
		errors["baseCurrency"] = "base currency must be a 2-5 letter code (EUR, USD, UF)"
	}

	// optional
	if req.CountryCode != "" && !countryCodePattern.MatchString(req.CountryCode) {
		errors["countryCode"] = "country code must be a 2 letter code (NL, MX)"
	}

	if req.Provider != "" && !model.ProviderID(req.Provider).Valid() {
		errors["provider"] = fmt.Sprintf("unknown provider: %s", req.Provider)
	}

	if req.IntervalUnit != "" && !model.ValidIntervalUnit(req.IntervalUnit) {
		errors["intervalUnit"] = fmt.Sprintf("invalid interval unit: %s", req.IntervalUnit)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateOrganizationSettings(req request.UpdateOrganizationSettingsRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.BaseCurrency) == "" {
		errors["baseCurrency"] = "base currency is required"
	} else if !currencyCodePattern.MatchString(strings.ToUpper(req.BaseCurrency)) {
		errors["baseCurrency"] = "base currency must be a 2-5 letter code (EUR, USD, UF)"
	}

	if req.Provider != "" && !model.ProviderID(req.Provider).Valid() {
		errors["provider"] = fmt.Sprintf("unknown provider: %s", req.Provider)
	}

	if strings.TrimSpace(req.IntervalUnit) == "" {
		errors["intervalUnit"] = "interval unit is required"
	} else if !model.ValidIntervalUnit(req.IntervalUnit) {
		errors["intervalUnit"] = fmt.Sprintf("invalid interval unit: %s", req.IntervalUnit)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
