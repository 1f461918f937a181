package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/api"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/config"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/database"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/provider"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	currencyRepo := repository.NewCurrencyRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	rateRepo := repository.NewRateRepository(db)
	providerConfigRepo := repository.NewProviderConfigRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	providerConfigService, err := service.NewProviderConfigService(providerConfigRepo, cfg.Provider)
	if err != nil {
		log.Fatalf("Failed to initialize provider configuration: %v", err)
	}
	registry := provider.NewRegistry(providerConfigService, provider.Options{
		FetchTimeout:     cfg.Provider.FetchTimeout,
		BCRPLookbackDays: cfg.Provider.BCRPLookbackDays,
	})
	currencyService := service.NewCurrencyService(currencyRepo)
	organizationService := service.NewOrganizationService(organizationRepo)
	rateService := service.NewRateService(db, currencyRepo, organizationRepo, rateRepo, registry)
	schedulerService := service.NewSchedulerService(organizationRepo, rateService)

	// Scheduled refresh: one tick per day, early morning UTC, after most
	// European sources have published.
	scheduler := cron.New()
	_, err = scheduler.AddFunc("0 6 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		summary, err := schedulerService.RunScheduledRefresh(ctx)
		if err != nil {
			log.Printf("Scheduled rate refresh failed: %v", err)
			return
		}
		log.Printf("Scheduled rate refresh finished: %d upserted, %d provider(s) failed",
			summary.TotalUpserted, summary.TotalFailed)
	})
	if err != nil {
		log.Fatalf("Failed to schedule rate refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, currencyService, organizationService, rateService, schedulerService, providerConfigService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
