package main

// @title FieldSync Agent API
// @version 1.0.0
// @description On-device agent for offline-first field inspection of weather stations.
// @description
// @description Main capabilities:
// @description - Cached station catalogue and tour plans with a daily work view
// @description - Trip lifecycle with segment-by-segment distance accumulation
// @description - Offline visit capture with kind-aware inspection validation
// @description - Durable submission queue with pull/push synchronization

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/fieldsync-agent/docs"
	"github.com/fieldsync-agent/internal/config"
	httpDelivery "github.com/fieldsync-agent/internal/delivery/http"
	"github.com/fieldsync-agent/internal/delivery/http/handler"
	"github.com/fieldsync-agent/internal/geosampler"
	"github.com/fieldsync-agent/internal/infrastructure/central"
	"github.com/fieldsync-agent/internal/pkg/logger"
	"github.com/fieldsync-agent/internal/pkg/metrics"
	"github.com/fieldsync-agent/internal/repository/postgres"
	redisRepo "github.com/fieldsync-agent/internal/repository/redis"
	"github.com/fieldsync-agent/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting FieldSync Agent")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("operator_id", cfg.Central.OperatorID),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := redisRepo.New(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	stationStore := postgres.NewStationRepository(db)
	planStore := postgres.NewPlanRepository(db)
	tripStore := postgres.NewTripRepository(db)
	subStore := postgres.NewSubmissionRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	centralRepo := central.NewClient(&cfg.Central, log)
	log.Info("Repositories initialized")

	// 7. GPS sampler and metrics
	sampler := geosampler.NewSampler(
		geosampler.NewHTTPSource(cfg.GPS.SourceAddr),
		cfg.GPS.AcquireTimeout,
		log,
	)
	collector := metrics.NewCollector(prometheus.DefaultRegisterer, "fieldsync")

	// 8. Initialize use cases
	mediaPipeline := usecase.NewMediaPipeline(centralRepo, collector, log)
	tripUC := usecase.NewTripUseCase(tripStore, centralRepo, cfg.Central.OperatorID, log)
	planUC := usecase.NewPlanUseCase(planStore, cfg.Central.OperatorID, log)
	visitUC := usecase.NewVisitUseCase(stationStore, planStore, subStore, tripUC, sampler, collector, log)
	syncUC := usecase.NewSyncUseCase(stationStore, planStore, subStore, centralRepo, mediaPipeline, cfg.Central.OperatorID, collector, log)
	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	stationHandler := handler.NewStationHandler(stationStore, log)
	planHandler := handler.NewPlanHandler(planUC, log)
	tripHandler := handler.NewTripHandler(tripUC, sampler, log)
	visitHandler := handler.NewVisitHandler(visitUC, log)
	syncHandler := handler.NewSyncHandler(syncUC, streamRepo, cfg.Central.OperatorID, log)

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		stationHandler,
		planHandler,
		tripHandler,
		visitHandler,
		syncHandler,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Agent started",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Agent stopped")
}
