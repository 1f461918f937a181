package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/request"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/response"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/service"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/validation"
)

// OrganizationHandler handles HTTP requests for organization endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the organizationService.
type OrganizationHandler struct {
	organizationService *service.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler with the provided service dependency.
func NewOrganizationHandler(organizationService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		organizationService: organizationService,
	}
}

// Organizations handles GET requests to retrieve all organizations.
//
// Endpoint: GET /api/organizations
// Response: 200 OK with array of organizations
// Error: 500 Internal Server Error if retrieval fails
func (h *OrganizationHandler) Organizations(w http.ResponseWriter, r *http.Request) {
	organizations, err := h.organizationService.GetAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve organizations", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, organizations)
}

// Organization handles GET requests to retrieve one organization.
//
// Endpoint: GET /api/organizations/{organizationId}
// Response: 200 OK with the organization
// Error: 404 Not Found if the organization does not exist
func (h *OrganizationHandler) Organization(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "organizationId")

	org, err := h.organizationService.Get(id)
	if errors.Is(err, apperrors.ErrOrganizationNotFound) {
		response.RespondError(w, http.StatusNotFound, "organization not found", "")
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve organization", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, org)
}

// CreateOrganization handles POST requests to create an organization.
//
// Endpoint: POST /api/organizations
// Response: 201 Created with the new organization
// Error: 400 Bad Request on validation failure
func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateOrganization(req); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	org, err := h.organizationService.Create(req.Name, req.CountryCode, req.BaseCurrency,
		model.ProviderID(req.Provider), req.IntervalUnit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create organization", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, org)
}

// UpdateSettings handles PUT requests to change an organization's
// exchange-rate settings: base currency, provider and refresh cadence.
//
// Endpoint: PUT /api/organizations/{organizationId}/settings
// Response: 200 OK with the updated organization
// Error: 400 Bad Request on validation failure, 404 Not Found if the organization does not exist
func (h *OrganizationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "organizationId")

	var req request.UpdateOrganizationSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateOrganizationSettings(req); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	org, err := h.organizationService.UpdateSettings(id, req.BaseCurrency,
		model.ProviderID(req.Provider), req.IntervalUnit)
	if errors.Is(err, apperrors.ErrOrganizationNotFound) {
		response.RespondError(w, http.StatusNotFound, "organization not found", "")
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to update organization settings", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, org)
}
