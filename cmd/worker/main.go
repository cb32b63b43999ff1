package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/config"
	"github.com/fieldsync-agent/internal/infrastructure/central"
	"github.com/fieldsync-agent/internal/pkg/logger"
	"github.com/fieldsync-agent/internal/pkg/metrics"
	"github.com/fieldsync-agent/internal/repository/postgres"
	redisRepo "github.com/fieldsync-agent/internal/repository/redis"
	"github.com/fieldsync-agent/internal/usecase"
	"github.com/fieldsync-agent/internal/worker"
	syncworker "github.com/fieldsync-agent/internal/worker/sync"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting FieldSync Sync Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Duration("sync_interval", cfg.Sync.Interval),
		zap.String("operator_id", cfg.Central.OperatorID))

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

	// 5. Initialize repositories
	stationStore := postgres.NewStationRepository(db)
	planStore := postgres.NewPlanRepository(db)
	subStore := postgres.NewSubmissionRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	centralRepo := central.NewClient(&cfg.Central, log)

	// 6. Initialize use cases
	collector := metrics.NewCollector(prometheus.DefaultRegisterer, "fieldsync_worker")
	mediaPipeline := usecase.NewMediaPipeline(centralRepo, collector, log)
	syncUC := usecase.NewSyncUseCase(
		stationStore,
		planStore,
		subStore,
		centralRepo,
		mediaPipeline,
		cfg.Central.OperatorID,
		collector,
		log,
	)

	// 7. Initialize workers
	syncWorker := syncworker.NewWorker(
		streamRepo,
		syncUC,
		cfg.Central.OperatorID,
		cfg.Worker.ConsumerGroup,
		cfg.Sync.Interval,
		log,
	)

	// 8. Create worker manager and register workers
	manager := worker.NewManager(log)
	manager.Register(syncWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
