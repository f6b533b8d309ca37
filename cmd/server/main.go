package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/seed"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/state"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
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
	logging.Setup(pgLogHandler)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// Verdict cache (optional)
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	opts := []classifier.Option{
		classifier.WithRecorder(collector),
		classifier.WithRateLimit(cfg.AIRatePerMinute, cfg.AIRateBurst),
	}
	var cachePinger handlers.Pinger
	var redisCache *cache.RedisCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(startCtx, cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, verdict cache disabled", "error", err)
		} else {
			redisCache = rc
			cachePinger = rc
			opts = append(opts, classifier.WithCache(rc, cfg.CacheTTL))
		}
	}

	cl := classifier.New(classifier.ProvidersFromConfig(cfg), cfg.AITimeout, opts...)
	if !cl.Remote() {
		slog.Warn("no AI provider configured, using keyword heuristic")
	}

	// State
	repo := repository.New(database.DB)
	if cfg.SeedData {
		if _, err := seed.Run(startCtx, repo, time.Now()); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}
	data, err := repo.Load(startCtx)
	if err != nil {
		slog.Error("loading state failed", "error", err)
		os.Exit(1)
	}
	store := state.NewStore(state.New(data.Reports, data.Users, data.Posts))
	slog.Info("state loaded", "reports", len(data.Reports), "users", len(data.Users), "posts", len(data.Posts))

	// Services
	sanitizer := security.NewSanitizer()
	moderationService := services.NewModerationService()
	userService := services.NewUserService(store, cfg)
	reportService := services.NewReportService(store, repo, cl, sanitizer, moderationService, collector)
	communityService := services.NewCommunityService(store, repo, sanitizer, moderationService, collector)

	// Handlers
	healthHandler := handlers.NewHealthHandler(database.Ping, cachePinger, cl.Remote())
	userHandler := handlers.NewUserHandler(userService)
	reportHandler := handlers.NewReportHandler(reportService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	directoryHandler := handlers.NewDirectoryHandler()

	// Fiber app. Base64 screenshots inflate by a third, hence the headroom.
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(collector.Middleware())

	app.Get("/metrics", metrics.FiberHandler(registry))

	// Routes
	routes.Setup(app, cfg, healthHandler, userHandler, reportHandler, communityHandler, directoryHandler)

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

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
