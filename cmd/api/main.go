package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clearance-tracker/internal/core/cache"
	"clearance-tracker/internal/core/config"
	"clearance-tracker/internal/core/logger"
	"clearance-tracker/internal/core/server"
	"clearance-tracker/internal/core/telemetry"
	"clearance-tracker/internal/features/shipments/adapters"
	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/handler"
	"clearance-tracker/internal/features/shipments/service"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Clearance Tracker API
// @version 1.0
// @description Shipment records, progress timelines and public tracking lookup for a customs brokerage.
// @contact.name API Support
// @contact.email support@clearance-tracker.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.basic BasicAuth
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("key_prefix", cfg.Redis.KeyPrefix),
	)

	meter, shutdownMetrics, err := telemetry.InitMetrics(cfg.Metrics.Exporter, "clearance-tracker")
	if err != nil {
		l.Fatal("Failed to init metrics", zap.Error(err))
	}

	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Invalid Redis configuration", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisCache.Ping(pingCtx)
	cancel()
	if err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	repo := adapters.NewRedisShipmentRepository(redisCache.Client(), cfg.Redis.KeyPrefix,
		adapters.WithMaxRetries(cfg.Redis.MutationMaxRetries),
	)
	shipmentSvc := service.NewShipmentService(repo, redisCache, service.Settings{
		TrackingIDs:       domain.NewTrackingIDGenerator(cfg.Tracking.IDPrefix),
		MaxCreateAttempts: cfg.Tracking.MaxCreateAttempts,
		LookupCacheTTL:    cfg.Tracking.CacheTTL(),
		LookupCachePrefix: cfg.Redis.KeyPrefix,
		Meter:             meter,
	})

	srv := server.New(cfg)

	// Register Routes
	srv.RegisterHealth(repo)
	handler.NewTrackingHandler(shipmentSvc).Register(srv.App)
	handler.NewShipmentHandler(shipmentSvc).Register(srv.Admin())

	go func() {
		if err := srv.Run(); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	l.Info("Shutting down", zap.String("signal", sig.String()))

	if err := srv.Shutdown(shutdownTimeout); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownMetrics(ctx); err != nil {
		l.Error("Metrics shutdown failed", zap.Error(err))
	}
}
