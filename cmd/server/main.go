// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propmarket/internal/config"
	"propmarket/internal/events"
	"propmarket/internal/jobs"
	applogger "propmarket/internal/logger"
	"propmarket/internal/metrics"
	"propmarket/internal/repositories"
	"propmarket/internal/routes"
	"propmarket/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Initializes database and cache connections
// - Wires services, routes and background jobs
// - Starts the HTTP server and shuts it down on SIGINT/SIGTERM
func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	log, err := applogger.New(config.IsProduction())
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(cfg); err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatal("failed to get database instance", zap.Error(err))
	}
	if err := repositories.PingDatabase(context.Background(), sqlDB); err != nil {
		log.Fatal("database unreachable", zap.Error(err))
	}

	if err := repositories.CacheService.HealthCheck(context.Background()); err != nil {
		log.Warn("redis unavailable, caching disabled", zap.Error(err))
		_ = repositories.CacheService.Close()
		repositories.CacheService = nil
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Warn("failed to close redis connection", zap.Error(err))
			}
		}
	}()

	var publisher events.Publisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, log), log)
		log.Info("publishing domain events to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}
	defer func() { _ = publisher.Close() }()

	var gateway payment.Gateway
	if cfg.StripeSecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey, log)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, card top-ups disabled")
	}

	procedures := repositories.NewProcedures(repositories.DB, repositories.ProceduresConfig{
		Currency:        cfg.Marketplace.Currency,
		PlatformFeeRate: decimal.NewNullDecimal(cfg.Marketplace.PlatformFeeRate),
		Timeout:         cfg.Marketplace.ProcedureTimeout,
	})

	deps := routes.Dependencies{
		DB:         repositories.DB,
		Procedures: procedures,
		Cache:      repositories.CacheService,
		Gateway:    gateway,
		Metrics:    metrics.NewPrometheus(prometheus.DefaultRegisterer),
		Events:     publisher,
		Logger:     log,
		Config:     cfg,
	}
	services := routes.BuildServices(deps)

	scheduler := jobs.NewScheduler(log, cfg.Marketplace.ProcedureTimeout)
	expiry := jobs.NewListingExpiry(procedures, services.Marketplace, publisher, log)
	if err := scheduler.Register(cfg.Marketplace.ExpirySchedule, expiry); err != nil {
		log.Fatal("invalid MARKETPLACE_EXPIRY_SCHEDULE", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "propmarket",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Routes
	routes.SetupRoutes(app, deps, services)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()
	log.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
}
