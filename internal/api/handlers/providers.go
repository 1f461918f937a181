package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/request"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/response"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/service"
)

// ProviderHandler handles HTTP requests for the provider catalog and
// runtime provider configuration.
type ProviderHandler struct {
	configService *service.ProviderConfigService
}

// NewProviderHandler creates a new ProviderHandler with the provided service dependency.
func NewProviderHandler(configService *service.ProviderConfigService) *ProviderHandler {
	return &ProviderHandler{
		configService: configService,
	}
}

// Providers handles GET requests to list the supported providers.
//
// Endpoint: GET /api/providers
// Response: 200 OK with the provider identifiers
func (h *ProviderHandler) Providers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, model.AllProviders)
}

// UpdateConfig handles PUT requests to store runtime provider settings.
// The banxico token is encrypted before it is stored; tokens are write-only
// and never returned by the API.
//
// Endpoint: PUT /api/providers/config
// Response: 204 No Content
// Error: 400 Bad Request on a malformed body, 422 Unprocessable Entity
// when a token is supplied without an encryption key configured
func (h *ProviderHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateProviderConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.BanxicoToken != nil {
		if err := h.configService.SetBanxicoToken(*req.BanxicoToken); err != nil {
			response.RespondError(w, http.StatusUnprocessableEntity, "failed to store banxico token", err.Error())
			return
		}
	}

	if req.MindicadorBaseURL != nil {
		if err := h.configService.SetMindicadorBaseURL(*req.MindicadorBaseURL); err != nil {
			response.RespondError(w, http.StatusInternalServerError, "failed to store mindicador endpoint", err.Error())
			return
		}
	}

	respondJSON(w, http.StatusNoContent, nil)
}
