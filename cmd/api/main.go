package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/easycod/platform/internal/auth"
	"github.com/easycod/platform/internal/guard"
	"github.com/easycod/platform/internal/handler"
	"github.com/easycod/platform/internal/infra"
	"github.com/easycod/platform/internal/pixel"
	"github.com/easycod/platform/internal/provider"
	"github.com/easycod/platform/internal/repository"
	"github.com/easycod/platform/internal/service"
	"github.com/easycod/platform/internal/session"
	"github.com/go-chi/chi/v5"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	// Connect to Postgres
	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	// Run migrations
	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Repositories
	settingsRepo := repository.NewSettingsRepository()
	formRepo := repository.NewFormRepository()
	submissionRepo := repository.NewSubmissionRepository()
	outboxRepo := repository.NewOutboxRepository()
	locationRepo := repository.NewLocationRepository()
	statsRepo := repository.NewStatsRepository()

	// Guards
	rateLimiter := guard.NewRateLimiter(60, time.Minute)
	breaker := guard.NewCircuitBreaker(5, 30*time.Second)
	idem := guard.NewIdempotencyGuard()

	// Pixel dispatcher: per-shop tracker registry over the conversion-API
	// clients, wrapped in the circuit breaker.
	clients := service.NewPlatformClients(cfg)
	dispatcher := pixel.NewDispatcher(service.NewPlatformRegistry(clients, breaker), logger)

	// Session state for the event triggers
	store := session.NewPGStore(pool)

	// Shopify Admin API client for order creation
	shopifyClient := provider.NewShopifyClient(cfg.ShopifyAccessToken, cfg.ShopifyAPIVersion)

	// Services
	trackingSvc := service.NewTrackingService(pool, settingsRepo, outboxRepo, dispatcher, store, logger)
	formSvc := service.NewFormService(pool, formRepo, submissionRepo, outboxRepo, locationRepo, idem, shopifyClient, trackingSvc, logger)
	settingsSvc := service.NewSettingsService(pool, settingsRepo, formRepo, submissionRepo, outboxRepo, statsRepo, logger)

	// Handlers
	proxyHandler := handler.NewProxyHandler(trackingSvc, formSvc, rateLimiter)
	adminHandler := handler.NewAdminHandler(settingsSvc)

	// Admin auth: Shopify session tokens
	verifier := auth.NewTokenVerifier(cfg.ShopifyAPISecret, cfg.ShopifyAPIKey)

	// Outbox poller publishes audit events to Kafka
	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	defer producer.Close()
	poller := infra.NewOutboxPoller(pool, producer, logger)
	poller.Start(ctx)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(cfg.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Storefront app-proxy routes
	r.Route("/proxy", func(r chi.Router) {
		r.Post("/session", proxyHandler.IssueSession)
		r.Get("/form", proxyHandler.GetForm)
		r.Get("/locations", proxyHandler.ListWilayas)
		r.Get("/locations/{wilaya}/communes", proxyHandler.ListCommunes)
		r.Post("/track/field", proxyHandler.TrackField)
		r.Post("/track/cart", proxyHandler.TrackCart)
		r.Post("/submit", proxyHandler.Submit)
	})

	// Embedded dashboard routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(verifier))

		r.Get("/settings", adminHandler.GetSettings)
		r.Put("/settings", adminHandler.PutSettings)
		r.Get("/form", adminHandler.GetForm)
		r.Put("/form", adminHandler.PutForm)
		r.Get("/submissions", adminHandler.ListSubmissions)
		r.Get("/reports/events", adminHandler.GetEventReport)
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
