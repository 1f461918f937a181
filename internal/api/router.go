package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/handlers"
	custommiddleware "github.com/rvosse/Currency-Rate-Sync-Backend/internal/api/middleware"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/config"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	currencyService *service.CurrencyService,
	organizationService *service.OrganizationService,
	rateService *service.RateService,
	schedulerService *service.SchedulerService,
	providerConfigService *service.ProviderConfigService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/currencies", func(r chi.Router) {
			currencyHandler := handlers.NewCurrencyHandler(currencyService)
			r.Get("/", currencyHandler.Currencies)
		})

		r.Route("/organizations", func(r chi.Router) {
			organizationHandler := handlers.NewOrganizationHandler(organizationService)
			r.Get("/", organizationHandler.Organizations)
			r.Post("/", organizationHandler.CreateOrganization)

			r.Route("/{organizationId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateOrganizationIDMiddleware)
				r.Get("/", organizationHandler.Organization)
				r.Put("/settings", organizationHandler.UpdateSettings)
			})
		})

		r.Route("/rates", func(r chi.Router) {
			rateHandler := handlers.NewRateHandler(rateService, schedulerService)
			r.Get("/", rateHandler.Rates)
			r.Post("/refresh", rateHandler.RefreshAll)

			r.Route("/refresh/{organizationId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateOrganizationIDMiddleware)
				r.Post("/", rateHandler.RefreshOrganization)
			})
		})

		r.Route("/providers", func(r chi.Router) {
			providerHandler := handlers.NewProviderHandler(providerConfigService)
			r.Get("/", providerHandler.Providers)
			r.Put("/config", providerHandler.UpdateConfig)
		})
	})

	return r
}
