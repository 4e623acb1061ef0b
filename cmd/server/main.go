package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mapdex/internal/client"
	"mapdex/internal/config"
	"mapdex/internal/db"
	"mapdex/internal/email"
	"mapdex/internal/geocode"
	"mapdex/internal/jobs"
	"mapdex/internal/metrics"
	"mapdex/internal/results"
	"mapdex/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Register Prometheus collectors
	metrics.Init(database)

	// Shared services
	collection := results.NewCollection(cfg.ResultsCacheSize)
	apiClient := client.New(cfg.APIBaseURL)
	geo := geocode.New(cfg.GeocodeBaseURL)
	notifier := email.NewNotifier(cfg, database)

	// Initialize server and routes
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, apiClient, collection, geo, notifier); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Background geocode backfill
	if cfg.GeocodeBackfillEnabled {
		backfiller := jobs.NewGeocodeBackfiller(database, geo, cfg.GeocodeBackfillInterval)
		go backfiller.Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
