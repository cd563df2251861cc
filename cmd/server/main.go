package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fundrazor/fundrazor/internal/campaigns"
	"github.com/fundrazor/fundrazor/internal/canvas"
	"github.com/fundrazor/fundrazor/internal/config"
	"github.com/fundrazor/fundrazor/internal/datahealth"
	"github.com/fundrazor/fundrazor/internal/db"
	"github.com/fundrazor/fundrazor/internal/export"
	"github.com/fundrazor/fundrazor/internal/httpapi"
	"github.com/fundrazor/fundrazor/internal/importer"
	"github.com/fundrazor/fundrazor/internal/interactions"
	"github.com/fundrazor/fundrazor/internal/middleware"
	"github.com/fundrazor/fundrazor/internal/repository"

	"github.com/rs/cors"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Run migrations before opening the pool
	if err := db.RunMigrations(cfg.Database, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Create repositories
	personRepo := repository.NewPersonRepository(conn.Pool)
	interactionRepo := repository.NewInteractionRepository(conn.Pool)
	opportunityRepo := repository.NewOpportunityRepository(conn.Pool)
	campaignRepo := repository.NewCampaignRepository(conn.Pool)
	canvasRepo := repository.NewCanvasRepository(conn.Pool)

	// Create services
	healthService := datahealth.NewService(personRepo, interactionRepo, opportunityRepo)
	campaignService := campaigns.NewService(campaignRepo)
	interactionService := interactions.NewService(interactionRepo)
	canvasService := canvas.NewService(canvasRepo)
	importService := importer.NewTransactedService(conn)
	exportService := export.NewService(personRepo)

	// Mount REST routes
	router := httpapi.NewRouter(httpapi.Handlers{
		DataHealth:   httpapi.NewDataHealthHandler(healthService),
		Campaigns:    httpapi.NewCampaignHandler(campaignService),
		Interactions: httpapi.NewInteractionHandler(interactionService),
		Canvases:     httpapi.NewCanvasHandler(canvasService),
		Persons:      httpapi.NewPersonHandler(personRepo, importService, exportService),
	}, cfg.AuthToken)

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	handler := middleware.LoggingMiddleware(corsHandler.Handler(router))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting FundRazor API on %s", cfg.ServerAddr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
