package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mapdex/internal/client"
	"mapdex/internal/db"
	"mapdex/internal/email"
	"mapdex/internal/geocode"
	"mapdex/internal/handlers"
	"mapdex/internal/handlers/api"
	"mapdex/internal/middleware"
	"mapdex/internal/results"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, apiClient *client.Client, collection *results.Collection, geo *geocode.Client, notifier *email.Notifier) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database, s.Cfg)

	// Initialize handlers
	entryHandler := api.NewEntryHandler(database, s.Cfg)
	ratingHandler := api.NewRatingHandler(database)
	searchHandler := api.NewSearchHandler(database, collection)
	mapsHandler := handlers.NewMapsHandler(database, s.Cfg)
	submitHandler := handlers.NewSubmitHandler(apiClient, collection, s.Cfg, notifier)
	geocodeHandler := handlers.NewGeocodeHandler(geo)
	probeHandler := handlers.NewProbeHandler(database)

	// Auth routes - only when an OIDC issuer is configured
	if s.Cfg.IsOIDCEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
		if s.Cfg.RequireLoginToEdit {
			log.Fatal("REQUIRE_LOGIN_TO_EDIT needs a configured OIDC issuer")
		}
	}

	// Login page (always available)
	s.App.Get("/login", func(c fiber.Ctx) error {
		return c.Render("login", handlers.MergeBranding(fiber.Map{"Title": "Login"}, s.Cfg))
	})

	// Map application shell; the slug travels in the path
	s.App.Get("/", func(c fiber.Ctx) error {
		return c.Redirect().To("/maps")
	})
	s.App.Get("/maps", authMiddleware.OptionalAuth, mapsHandler.Shell)
	s.App.Get("/maps/*", authMiddleware.OptionalAuth, mapsHandler.Shell)

	// Submission workflow (BFF); the duplicate decision spans two requests
	s.App.Post("/maps/entries", authMiddleware.RequireEditor, submitHandler.Submit)
	s.App.Post("/maps/entries/confirm", authMiddleware.RequireEditor, submitHandler.Confirm)
	s.App.Post("/maps/entries/decline", authMiddleware.RequireEditor, submitHandler.Decline)

	// Pin reverse geocoding
	s.App.Get("/geocode/reverse", geocodeHandler.Reverse)

	// Directory API
	s.App.Get("/search", searchHandler.Search)
	s.App.Post("/entries", entryHandler.Create)
	s.App.Post("/entries/duplicates", entryHandler.Duplicates)
	s.App.Get("/entries/:id", entryHandler.Get)
	s.App.Put("/entries/:id", entryHandler.Update)
	s.App.Delete("/entries/:id", authMiddleware.RequireModerator, entryHandler.Archive)
	s.App.Post("/ratings", ratingHandler.Create)
	s.App.Post("/ratings/:id/comments", ratingHandler.CreateComment)
	s.App.Get("/ratings/:ids", ratingHandler.GetByIDs)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
