package service

import (
	"strings"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
)

// OrganizationService handles business logic for organizations and their
// exchange-rate settings.
type OrganizationService struct {
	orgRepo *repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService with the provided repository.
func NewOrganizationService(orgRepo *repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo}
}

// GetAll retrieves all organizations.
func (s *OrganizationService) GetAll() ([]model.Organization, error) {
	return s.orgRepo.GetAll()
}

// Get retrieves one organization by ID.
func (s *OrganizationService) Get(id string) (model.Organization, error) {
	return s.orgRepo.GetByID(id)
}

// Create creates a new organization. When no provider is given, the
// organization's country picks the default: central banks cover their
// own country best, and everyone else gets the ECB.
func (s *OrganizationService) Create(name, countryCode, baseCurrency string, providerID model.ProviderID, intervalUnit string) (model.Organization, error) {
	countryCode = strings.ToUpper(countryCode)

	if providerID == "" {
		providerID = model.DefaultProviderForCountry(countryCode)
	}
	if intervalUnit == "" {
		intervalUnit = model.IntervalManually
	}

	org := model.Organization{
		Name:              name,
		CountryCode:       countryCode,
		BaseCurrency:      strings.ToUpper(baseCurrency),
		Provider:          providerID,
		IntervalUnit:      intervalUnit,
		NextExecutionDate: NextExecutionDate(intervalUnit, today()),
	}

	return s.orgRepo.Create(org)
}

// UpdateSettings changes an organization's base currency, provider and
// refresh cadence. Switching to a scheduled cadence plants the next
// execution date; switching to manual clears it.
func (s *OrganizationService) UpdateSettings(id string, baseCurrency string, providerID model.ProviderID, intervalUnit string) (model.Organization, error) {
	org, err := s.orgRepo.GetByID(id)
	if err != nil {
		return model.Organization{}, err
	}

	baseCurrency = strings.ToUpper(baseCurrency)
	if err := s.orgRepo.UpdateSettings(id, baseCurrency, providerID, intervalUnit); err != nil {
		return model.Organization{}, err
	}

	if intervalUnit != org.IntervalUnit {
		var next *time.Time
		if intervalUnit != model.IntervalManually {
			next = NextExecutionDate(intervalUnit, today())
		}
		if err := s.orgRepo.UpdateNextExecution(id, next); err != nil {
			return model.Organization{}, err
		}
	}

	return s.orgRepo.GetByID(id)
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
