package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/backend"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/export"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/monitor"
	"github.com/MuhamadAgungGumelar/compta-web/internal/core/session"
	"github.com/MuhamadAgungGumelar/compta-web/internal/modules/account"
	"github.com/MuhamadAgungGumelar/compta-web/internal/modules/dashboard"
	"github.com/MuhamadAgungGumelar/compta-web/internal/modules/documents"
	"github.com/MuhamadAgungGumelar/compta-web/internal/modules/health"
	"github.com/MuhamadAgungGumelar/compta-web/internal/shared/config"
	"github.com/MuhamadAgungGumelar/compta-web/internal/shared/middleware"
	"github.com/MuhamadAgungGumelar/compta-web/internal/shared/utils"
	"github.com/MuhamadAgungGumelar/compta-web/internal/view"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	_ "github.com/MuhamadAgungGumelar/compta-web/cmd/web/docs"
)

// @title Compta Online Web
// @version 1.0
// @description Role-adaptive accounting dashboard and documents front end for the Compta Online API
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel, !cfg.IsProduction())

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Accounting API client
	client := backend.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	log.Info().Str("base_url", client.BaseURL()).Msg("accounting API configured")

	// Credential cookie
	var blockKey []byte
	if cfg.CookieBlockKey != "" {
		blockKey = []byte(cfg.CookieBlockKey)
	}
	store := session.NewStore(cfg.CookieName, []byte(cfg.CookieHashKey), blockKey, cfg.IsProduction())

	exports := export.NewService("Documents")

	// Backend check
	mon := monitor.New(client, cfg.APITimeout)
	if err := mon.Schedule(cfg.BackendCheckSchedule); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.BackendCheckSchedule).Msg("invalid check schedule")
	}
	mon.Start()
	defer mon.Stop()
	go mon.Check(context.Background())

	// Handlers
	accountHandler := account.NewAccountHandler(client, store)
	dashboardHandler := dashboard.NewDashboardHandler(client, store, dashboard.WithTimeout(cfg.DashboardTimeout))
	documentsHandler := documents.NewDocumentsHandler(client, store, exports, cfg.APIBaseURL, cfg.DocumentsPerPage)
	healthHandler := health.NewHealthHandler("compta-web", mon)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Compta Online Web",
		ErrorHandler: middleware.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: middleware.RequestIDKey}))
	app.Use(middleware.RequestContext())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New())
	app.Use(session.LoadSession(store))
	app.Use(view.UseFlashes(store.Codec()))

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Sign in, sign out, registration
	accountHandler.Register(app)

	// Dashboard
	dashboardHandler.Register(app)

	// Documents
	documentsHandler.Register(app)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("compta-web running")
		log.Info().Msgf("Swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
