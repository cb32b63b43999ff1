package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	"github.com/fieldsync-agent/internal/pkg/metrics"
	"github.com/fieldsync-agent/internal/usecase/dto"
)

// SyncUseCase reconciles local state with the central store. Pull refreshes
// reference data (stations, plans) in full snapshots; Push drains the
// pending submission queue. Both directions are independent: a failed pull
// never blocks a push and vice versa.
type SyncUseCase struct {
	stationStore repository.StationStore
	planStore    repository.PlanStore
	subStore     repository.SubmissionStore
	central      repository.CentralRepository
	media        *MediaPipeline
	operatorID   string
	metrics      *metrics.Collector
	logger       *zap.Logger
}

func NewSyncUseCase(
	stationStore repository.StationStore,
	planStore repository.PlanStore,
	subStore repository.SubmissionStore,
	central repository.CentralRepository,
	media *MediaPipeline,
	operatorID string,
	collector *metrics.Collector,
	logger *zap.Logger,
) *SyncUseCase {
	return &SyncUseCase{
		stationStore: stationStore,
		planStore:    planStore,
		subStore:     subStore,
		central:      central,
		media:        media,
		operatorID:   operatorID,
		metrics:      collector,
		logger:       logger,
	}
}

// Pull fetches station and plan snapshots and swaps them into the local
// store atomically. On any fetch failure the local caches keep serving the
// previous snapshot untouched.
func (uc *SyncUseCase) Pull(ctx context.Context) error {
	err := uc.pull(ctx)
	uc.metrics.RecordPull(err)
	return err
}

func (uc *SyncUseCase) pull(ctx context.Context) error {
	stations, err := uc.central.FetchStations(ctx)
	if err != nil {
		uc.logger.Warn("Station pull failed", zap.Error(err))
		return err
	}
	plans, err := uc.central.FetchPlans(ctx, uc.operatorID)
	if err != nil {
		uc.logger.Warn("Plan pull failed", zap.Error(err))
		return err
	}

	if err := uc.stationStore.ReplaceAll(ctx, stations); err != nil {
		return err
	}
	if err := uc.planStore.ReplaceAll(ctx, uc.operatorID, plans); err != nil {
		return err
	}

	uc.logger.Info("Pull completed",
		zap.Int("stations", len(stations)),
		zap.Int("plans", len(plans)))
	return nil
}

// Push drains the pending queue oldest first: media uploads, then the
// visit record. A failed item is marked ERROR and the drain moves on, so
// one poisoned submission never wedges the queue. Returns the number of
// submissions that reached SYNCED this cycle.
//
// Push is idempotent: only PENDING and ERROR submissions are considered,
// so re-running after a full drain is a no-op.
func (uc *SyncUseCase) Push(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		uc.metrics.PushCyclesTotal.Inc()
		uc.metrics.PushDuration.Observe(time.Since(start).Seconds())
	}()

	pending, err := uc.subStore.Retryable(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for i := range pending {
		sub := &pending[i]
		if uc.pushOne(ctx, sub) {
			synced++
		}
	}

	uc.refreshPendingGauge(ctx)
	if len(pending) > 0 {
		uc.logger.Info("Push completed",
			zap.Int("processed", len(pending)),
			zap.Int("synced", synced))
	}
	return synced, nil
}

func (uc *SyncUseCase) pushOne(ctx context.Context, sub *domain.Submission) bool {
	refs, err := uc.media.UploadAll(ctx, sub.Media)
	if err != nil {
		uc.metrics.PushItemsTotal.WithLabelValues("upload_error").Inc()
		uc.markError(ctx, sub.ID, err)
		return false
	}

	visit := sub.Visit
	visit.MediaRefs = refs
	if _, err := uc.central.SubmitVisit(ctx, &visit); err != nil {
		uc.metrics.PushItemsTotal.WithLabelValues("submit_error").Inc()
		uc.markError(ctx, sub.ID, err)
		return false
	}

	if err := uc.subStore.MarkStatus(ctx, sub.ID, domain.SubmissionSynced, ""); err != nil {
		uc.logger.Error("Failed to mark submission synced",
			zap.String("submission_id", sub.ID),
			zap.Error(err))
		return false
	}
	uc.metrics.PushItemsTotal.WithLabelValues("synced").Inc()
	return true
}

func (uc *SyncUseCase) markError(ctx context.Context, id string, cause error) {
	if err := uc.subStore.MarkStatus(ctx, id, domain.SubmissionError, cause.Error()); err != nil {
		uc.logger.Error("Failed to mark submission errored",
			zap.String("submission_id", id),
			zap.Error(err))
	}
}

// Sync runs a full cycle: pull reference data, then push the queue. The
// pull result is reported but never aborts the push.
func (uc *SyncUseCase) Sync(ctx context.Context) (*dto.SyncResultResponse, error) {
	pullErr := uc.Pull(ctx)

	uploaded, err := uc.Push(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := uc.subStore.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.SyncResultResponse{
		Pulled:       pullErr == nil,
		Uploaded:     uploaded,
		StillPending: counts[domain.SubmissionPending] + counts[domain.SubmissionError],
		FinishedAt:   time.Now().UTC(),
	}
	return result, nil
}

// Status summarizes the submission queue by status.
func (uc *SyncUseCase) Status(ctx context.Context) (*dto.SyncStatusResponse, error) {
	counts, err := uc.subStore.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	uc.metrics.PendingGauge.Set(float64(counts[domain.SubmissionPending] + counts[domain.SubmissionError]))
	return &dto.SyncStatusResponse{
		Pending: counts[domain.SubmissionPending],
		Errored: counts[domain.SubmissionError],
		Synced:  counts[domain.SubmissionSynced],
	}, nil
}

func (uc *SyncUseCase) refreshPendingGauge(ctx context.Context) {
	counts, err := uc.subStore.CountByStatus(ctx)
	if err != nil {
		return
	}
	uc.metrics.PendingGauge.Set(float64(counts[domain.SubmissionPending] + counts[domain.SubmissionError]))
}
