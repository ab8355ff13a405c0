package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/solcialhq/forum-backend/internal/authority"
	"github.com/solcialhq/forum-backend/internal/config"
	"github.com/solcialhq/forum-backend/internal/database"
	"github.com/solcialhq/forum-backend/internal/handlers"
	"github.com/solcialhq/forum-backend/internal/ledger"
	"github.com/solcialhq/forum-backend/internal/logging"
	"github.com/solcialhq/forum-backend/internal/middleware"
	"github.com/solcialhq/forum-backend/internal/routes"
	"github.com/solcialhq/forum-backend/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	platformID, err := uuid.Parse(cfg.PlatformAccountID)
	if err != nil {
		slog.Error("PLATFORM_ACCOUNT_ID must be a valid UUID", "error", err)
		os.Exit(1)
	}
	if cfg.TokenMint == "" {
		slog.Error("TOKEN_MINT environment variable is required")
		os.Exit(1)
	}

	// Admin authority set
	adminSet := authority.NewSet(cfg.AdminUserIDs)
	if len(adminSet.Members()) == 0 {
		if cfg.AdminToken == "" {
			slog.Error("no admin identities and no ADMIN_TOKEN configured; admin operations would be unreachable")
			os.Exit(1)
		}
		slog.Warn("no admin identities configured; the first ADMIN_TOKEN request enrolls its caller as admin")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Ledger and services
	led := ledger.New(platformID, cfg.TokenMint)
	authService := services.NewAuthService(database.DB, cfg, led)
	registryService := services.NewRegistryService(database.DB, adminSet)
	contentService := services.NewContentService(database.DB, led)
	ratingService := services.NewRatingService(database.DB, led)
	reportService := services.NewReportService(database.DB, led, adminSet)
	eventService := services.NewEventService(database.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	forumHandler := handlers.NewForumHandler(registryService, eventService)
	postHandler := handlers.NewPostHandler(contentService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	reportHandler := handlers.NewReportHandler(reportService)
	walletHandler := handlers.NewWalletHandler(database.DB, led)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, adminSet, authHandler, healthHandler, forumHandler, postHandler, ratingHandler, reportHandler, walletHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
