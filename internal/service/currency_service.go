package service

import (
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
)

// CurrencyService exposes the currency catalog. The catalog is seeded by
// migration and read by the rate pipeline; the API only lists it.
type CurrencyService struct {
	currencyRepo *repository.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService with the provided repository.
func NewCurrencyService(currencyRepo *repository.CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

// GetActive retrieves all active currencies, ordered by code.
func (s *CurrencyService) GetActive() ([]model.Currency, error) {
	return s.currencyRepo.GetActiveCurrencies()
}
