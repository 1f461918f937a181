package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/response"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/service"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/validation"
)

// RateHandler handles HTTP requests for exchange-rate endpoints: reading
// stored rates and triggering refreshes.
type RateHandler struct {
	rateService      *service.RateService
	schedulerService *service.SchedulerService
}

// NewRateHandler creates a new RateHandler with the provided service dependencies.
func NewRateHandler(rateService *service.RateService, schedulerService *service.SchedulerService) *RateHandler {
	return &RateHandler{
		rateService:      rateService,
		schedulerService: schedulerService,
	}
}

// Rates handles GET requests to retrieve stored rate records.
//
// Endpoint: GET /api/rates?organizationId=&currency=&startDate=&endDate=
// Response: 200 OK with array of rate records, newest first
// Error: 400 Bad Request on malformed filters
func (h *RateHandler) Rates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.RateFilter{
		OrganizationID: query.Get("organizationId"),
		CurrencyCode:   query.Get("currency"),
	}

	if filter.OrganizationID != "" {
		if err := validation.ValidateUUID(filter.OrganizationID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid organization ID format", err.Error())
			return
		}
	}

	startDate, endDate, err := validation.ParseDateRange(query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date filter", err.Error())
		return
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	records, err := h.rateService.GetRates(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve rates", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// RefreshAll handles POST requests to run a refresh cycle over every
// organization with a scheduled cadence that is currently due, exactly as
// the scheduler would.
//
// Endpoint: POST /api/rates/refresh
// Response: 200 OK with a refresh summary; Success=false flags provider outages
// Error: 422 Unprocessable Entity on configuration errors
func (h *RateHandler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	summary, err := h.schedulerService.RunScheduledRefresh(r.Context())
	if err != nil {
		respondRefreshError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// RefreshOrganization handles POST requests for a manual, single
// organization "update now" refresh.
//
// Endpoint: POST /api/rates/refresh/{organizationId}
// Response: 200 OK with a refresh summary
// Error: 404 Not Found for an unknown organization,
// 422 Unprocessable Entity on configuration errors,
// 503 Service Unavailable when the provider cannot be reached
func (h *RateHandler) RefreshOrganization(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "organizationId")

	summary, err := h.rateService.RefreshOrganization(r.Context(), id)
	if err != nil {
		respondRefreshError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// respondRefreshError maps refresh pipeline errors onto HTTP statuses.
// Configuration problems are the caller's to fix (422); an unreachable
// provider is transient and retried later (503).
func respondRefreshError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrOrganizationNotFound):
		response.RespondError(w, http.StatusNotFound, "organization not found", "")
	case errors.Is(err, apperrors.ErrBaseCurrencyUnsupported):
		response.RespondError(w, http.StatusUnprocessableEntity,
			"base currency not supported by the selected provider, please choose another provider", err.Error())
	case errors.Is(err, apperrors.ErrProviderNotConfigured):
		response.RespondError(w, http.StatusUnprocessableEntity,
			"the selected provider is not configured", err.Error())
	case errors.Is(err, apperrors.ErrProviderUnknown):
		response.RespondError(w, http.StatusUnprocessableEntity,
			"unknown exchange rate provider", err.Error())
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		response.RespondError(w, http.StatusServiceUnavailable,
			"unable to reach the exchange rate provider, the web service may be temporarily down, please try again later", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "rate refresh failed", err.Error())
	}
}
