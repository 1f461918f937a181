// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/response"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/validation"
)

// ValidateOrganizationIDMiddleware validates that the organizationId URL
// parameter is present and is a valid UUID.
// Returns 400 Bad Request if the organization ID is missing or invalid.
//
// Example usage in router:
//
//	r.Route("/{organizationId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateOrganizationIDMiddleware)
//	    r.Get("/", handler.GetOrganization)
//	})
func ValidateOrganizationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "organizationId")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "valid organization ID is required", "")
			return
		}

		if err := validation.ValidateUUID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid organization ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
