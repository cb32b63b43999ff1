package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	apperrors "github.com/fieldsync-agent/internal/pkg/errors"
	"github.com/fieldsync-agent/internal/usecase"
)

func newSyncFixture() (*MockStationStore, *MockPlanStore, *MockSubmissionStore, *MockCentralRepository, *usecase.SyncUseCase) {
	logger := zap.NewNop()
	collector := newTestCollector()
	stationStore := &MockStationStore{}
	planStore := &MockPlanStore{}
	subStore := &MockSubmissionStore{}
	central := &MockCentralRepository{}
	media := usecase.NewMediaPipeline(central, collector, logger)
	uc := usecase.NewSyncUseCase(stationStore, planStore, subStore, central, media, testOperator, collector, logger)
	return stationStore, planStore, subStore, central, uc
}

func emptyCounts() map[domain.SubmissionStatus]int {
	return map[domain.SubmissionStatus]int{}
}

func pendingSubmission(id, stationID string, blobs int) domain.Submission {
	media := make([]domain.MediaBlob, 0, blobs)
	for i := 0; i < blobs; i++ {
		media = append(media, domain.MediaBlob{
			ID:       id + "-photo",
			Data:     []byte{0xff, 0xd8},
			Filename: "photo.jpg",
		})
	}
	return domain.Submission{
		ID:     id,
		Visit:  domain.Visit{ID: id + "-visit", StationID: stationID},
		Media:  media,
		Status: domain.SubmissionPending,
	}
}

func TestSyncUseCase_Pull(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps both snapshots on success", func(t *testing.T) {
		stationStore, planStore, _, central, uc := newSyncFixture()
		stations := []domain.Station{{ID: "st-1"}}
		plans := []domain.Plan{{ID: "plan-1"}}
		central.On("FetchStations", ctx).Return(stations, nil)
		central.On("FetchPlans", ctx, testOperator).Return(plans, nil)
		stationStore.On("ReplaceAll", ctx, stations).Return(nil)
		planStore.On("ReplaceAll", ctx, testOperator, plans).Return(nil)

		assert.NoError(t, uc.Pull(ctx))
		stationStore.AssertExpectations(t)
		planStore.AssertExpectations(t)
	})

	t.Run("leaves local state untouched when a fetch fails", func(t *testing.T) {
		stationStore, planStore, _, central, uc := newSyncFixture()
		central.On("FetchStations", ctx).Return([]domain.Station{{ID: "st-1"}}, nil)
		central.On("FetchPlans", ctx, testOperator).Return(nil, apperrors.ErrNetwork)

		err := uc.Pull(ctx)

		assert.ErrorIs(t, err, apperrors.ErrNetwork)
		stationStore.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
		planStore.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSyncUseCase_Push(t *testing.T) {
	ctx := context.Background()

	t.Run("drains oldest first and marks items synced", func(t *testing.T) {
		_, _, subStore, central, uc := newSyncFixture()
		subs := []domain.Submission{
			pendingSubmission("sub-1", "st-1", 2),
			pendingSubmission("sub-2", "st-2", 2),
		}
		subStore.On("Retryable", ctx).Return(subs, nil)
		central.On("UploadMedia", ctx, mock.AnythingOfType("*domain.MediaBlob")).Return("https://central/media/x", nil)
		central.On("SubmitVisit", ctx, mock.AnythingOfType("*domain.Visit")).Return("visit-remote", nil)
		subStore.On("MarkStatus", ctx, "sub-1", domain.SubmissionSynced, "").Return(nil)
		subStore.On("MarkStatus", ctx, "sub-2", domain.SubmissionSynced, "").Return(nil)
		subStore.On("CountByStatus", ctx).Return(emptyCounts(), nil)

		synced, err := uc.Push(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, synced)
		subStore.AssertExpectations(t)
	})

	t.Run("a failed item is marked errored and the drain continues", func(t *testing.T) {
		_, _, subStore, central, uc := newSyncFixture()
		subs := []domain.Submission{
			pendingSubmission("sub-1", "st-1", 2),
			pendingSubmission("sub-2", "st-2", 2),
		}
		subStore.On("Retryable", ctx).Return(subs, nil)
		central.On("UploadMedia", ctx, mock.AnythingOfType("*domain.MediaBlob")).Return("https://central/media/x", nil)
		central.On("SubmitVisit", ctx, mock.MatchedBy(func(v *domain.Visit) bool {
			return v.StationID == "st-1"
		})).Return("", apperrors.ErrNetwork)
		central.On("SubmitVisit", ctx, mock.MatchedBy(func(v *domain.Visit) bool {
			return v.StationID == "st-2"
		})).Return("visit-remote", nil)
		subStore.On("MarkStatus", ctx, "sub-1", domain.SubmissionError, mock.AnythingOfType("string")).Return(nil)
		subStore.On("MarkStatus", ctx, "sub-2", domain.SubmissionSynced, "").Return(nil)
		subStore.On("CountByStatus", ctx).Return(emptyCounts(), nil)

		synced, err := uc.Push(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, synced)
		subStore.AssertExpectations(t)
	})

	t.Run("one failed upload defers the whole visit", func(t *testing.T) {
		_, _, subStore, central, uc := newSyncFixture()
		sub := pendingSubmission("sub-1", "st-1", 2)
		sub.Media[0].ID = "blob-ok"
		sub.Media[1].ID = "blob-bad"
		subStore.On("Retryable", ctx).Return([]domain.Submission{sub}, nil)
		central.On("UploadMedia", ctx, mock.MatchedBy(func(b *domain.MediaBlob) bool {
			return b.ID == "blob-ok"
		})).Return("https://central/media/ok", nil)
		central.On("UploadMedia", ctx, mock.MatchedBy(func(b *domain.MediaBlob) bool {
			return b.ID == "blob-bad"
		})).Return("", apperrors.ErrUpload)
		subStore.On("MarkStatus", ctx, "sub-1", domain.SubmissionError, mock.AnythingOfType("string")).Return(nil)
		subStore.On("CountByStatus", ctx).Return(emptyCounts(), nil)

		synced, err := uc.Push(ctx)

		assert.NoError(t, err)
		assert.Zero(t, synced)
		central.AssertNotCalled(t, "SubmitVisit", mock.Anything, mock.Anything)
	})

	t.Run("re-running after a full drain submits nothing", func(t *testing.T) {
		_, _, subStore, central, uc := newSyncFixture()
		subStore.On("Retryable", ctx).Return([]domain.Submission{}, nil)
		subStore.On("CountByStatus", ctx).Return(emptyCounts(), nil)

		synced, err := uc.Push(ctx)

		assert.NoError(t, err)
		assert.Zero(t, synced)
		central.AssertNotCalled(t, "UploadMedia", mock.Anything, mock.Anything)
		central.AssertNotCalled(t, "SubmitVisit", mock.Anything, mock.Anything)
	})
}

func TestSyncUseCase_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("a failed pull does not block the push", func(t *testing.T) {
		_, _, subStore, central, uc := newSyncFixture()
		central.On("FetchStations", ctx).Return(nil, apperrors.ErrNetwork)
		subStore.On("Retryable", ctx).Return([]domain.Submission{pendingSubmission("sub-1", "st-1", 2)}, nil)
		central.On("UploadMedia", ctx, mock.AnythingOfType("*domain.MediaBlob")).Return("https://central/media/x", nil)
		central.On("SubmitVisit", ctx, mock.AnythingOfType("*domain.Visit")).Return("visit-remote", nil)
		subStore.On("MarkStatus", ctx, "sub-1", domain.SubmissionSynced, "").Return(nil)
		subStore.On("CountByStatus", ctx).Return(emptyCounts(), nil)

		result, err := uc.Sync(ctx)

		assert.NoError(t, err)
		assert.False(t, result.Pulled)
		assert.Equal(t, 1, result.Uploaded)
		assert.Zero(t, result.StillPending)
	})
}

func TestSyncUseCase_Status(t *testing.T) {
	ctx := context.Background()
	_, _, subStore, _, uc := newSyncFixture()
	subStore.On("CountByStatus", ctx).Return(map[domain.SubmissionStatus]int{
		domain.SubmissionPending: 3,
		domain.SubmissionError:   1,
		domain.SubmissionSynced:  7,
	}, nil)

	status, err := uc.Status(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, status.Pending)
	assert.Equal(t, 1, status.Errored)
	assert.Equal(t, 7, status.Synced)
}
