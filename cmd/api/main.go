package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/propline/propline/internal/api/router"
	"github.com/propline/propline/internal/app/bootstrap"
	appconfig "github.com/propline/propline/internal/config"
	"github.com/propline/propline/internal/contact"
	"github.com/propline/propline/internal/http/handlers"
	"github.com/propline/propline/internal/leads"
	"github.com/propline/propline/internal/notify"
	"github.com/propline/propline/internal/observability/metrics"
	"github.com/propline/propline/internal/properties"
	"github.com/propline/propline/internal/quota"
	"github.com/propline/propline/pkg/logging"
)

func main() {
	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting propline API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	pool, err := bootstrap.BuildPgxPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	sqlDB, err := bootstrap.BuildSQLDB(cfg)
	if err != nil {
		logger.Error("failed to open sql handle", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	contactMetrics := metrics.NewContactMetrics(registry)

	// Repositories and services
	propsRepo := properties.NewPostgresRepository(pool)
	leadsRepo := leads.NewPostgresRepository(pool)
	quotaStore := quota.NewPostgresStore(pool, cfg.ContactQuotaLimit)

	emailSender := bootstrap.BuildEmailSender(ctx, cfg, logger)
	notifier := notify.NewService(emailSender, logger)

	gate := contact.NewGate(leadsRepo, propsRepo, quotaStore, notifier, contactMetrics, logger)
	velocity := contact.NewVelocityChecker(redisClient, cfg.ContactVelocityMax, cfg.ContactVelocityWindow, logger)

	// Handlers
	contactHandler := contact.NewHandler(gate, velocity, contact.RedirectURLs{
		Upsell:     cfg.UpsellURL,
		RenterPlan: cfg.RenterPlanURL,
		BuyerPlan:  cfg.BuyerPlanURL,
	}, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		PropertiesHandler:  properties.NewHandler(propsRepo, logger),
		ContactHandler:     contactHandler,
		LeadsHandler:       leads.NewHandler(leadsRepo, logger),
		AdminDashboard:     handlers.NewAdminDashboardHandler(sqlDB, logger),
		AdminQuota:         handlers.NewAdminQuotaHandler(quotaStore, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSOrigins(),
		RateLimitPerSec:    cfg.HTTPRateLimit,
		RateLimitBurst:     cfg.HTTPRateBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
