package handlers

import (
	"net/http"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/response"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/service"
)

// CurrencyHandler handles HTTP requests for the currency catalog.
type CurrencyHandler struct {
	currencyService *service.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler with the provided service dependency.
func NewCurrencyHandler(currencyService *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
	}
}

// Currencies handles GET requests to list the tracked currencies.
//
// Endpoint: GET /api/currencies
// Response: 200 OK with array of active currencies, code ascending
// Error: 500 Internal Server Error if retrieval fails
func (h *CurrencyHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.currencyService.GetActive()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve currencies", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, currencies)
}
