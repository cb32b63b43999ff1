package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	"github.com/fieldsync-agent/internal/usecase"
	"github.com/fieldsync-agent/internal/worker"
)

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
)

// Worker runs sync cycles in the background: periodically on a ticker and
// on demand when a request event arrives on the sync stream. Consecutive
// requests in one batch collapse into a single cycle.
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	syncUC       *usecase.SyncUseCase
	operatorID   string
	interval     time.Duration
	consumerName string
}

func NewWorker(
	streamRepo repository.StreamRepository,
	syncUC *usecase.SyncUseCase,
	operatorID string,
	consumerGroup string,
	interval time.Duration,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("sync", consumerGroup, logger),
		streamRepo:   streamRepo,
		syncUC:       syncUC,
		operatorID:   operatorID,
		interval:     interval,
		consumerName: consumerName,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting sync worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Duration("interval", w.interval))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamSyncRequest, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runCycle(ctx, "scheduler")

		default:
			processed, err := w.processRequests(ctx)
			if err != nil {
				logger.Error("Failed to process sync requests", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processRequests drains pending request events and runs at most one cycle
// for the whole batch. Every message is acknowledged either way; a failed
// cycle is retried by the next ticker fire, not by redelivery.
func (w *Worker) processRequests(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamSyncRequest,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	source := "api"
	for _, msg := range messages {
		var event domain.SyncRequestEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Skipping malformed sync request",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		} else if event.Source != "" {
			source = event.Source
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamSyncRequest, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack sync request",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	logger.Info("Sync requested",
		zap.Int("collapsed_requests", len(messages)),
		zap.String("source", source))
	w.runCycle(ctx, source)
	return len(messages), nil
}

func (w *Worker) runCycle(ctx context.Context, source string) {
	logger := w.Logger()

	result, err := w.syncUC.Sync(ctx)

	done := domain.SyncDoneEvent{
		OperatorID: w.operatorID,
		FinishedAt: time.Now().UTC(),
	}
	if err != nil {
		done.Error = err.Error()
		logger.Error("Sync cycle failed",
			zap.String("source", source),
			zap.Error(err))
	} else {
		done.Pulled = result.Pulled
		done.Uploaded = result.Uploaded
		done.StillPending = result.StillPending
		logger.Info("Sync cycle finished",
			zap.String("source", source),
			zap.Bool("pulled", result.Pulled),
			zap.Int("uploaded", result.Uploaded),
			zap.Int("still_pending", result.StillPending))
	}

	if err := w.streamRepo.Publish(ctx, domain.StreamSyncDone, done); err != nil {
		logger.Warn("Failed to publish sync done event", zap.Error(err))
	}
}
