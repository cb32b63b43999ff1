package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	"github.com/fieldsync-agent/internal/geosampler"
	apperrors "github.com/fieldsync-agent/internal/pkg/errors"
	"github.com/fieldsync-agent/internal/pkg/metrics"
	"github.com/fieldsync-agent/internal/usecase/dto"
)

const (
	minVisitPhotos = 2
	maxVisitPhotos = 4
)

// VisitUseCase runs the capture flow: validate the inspection against the
// station kind, acquire a position, record the trip segment, stage the
// submission durably and stamp the plan and station caches. Everything is
// local; the central store first hears about the visit when the sync engine
// pushes it.
type VisitUseCase struct {
	stationStore repository.StationStore
	planStore    repository.PlanStore
	subStore     repository.SubmissionStore
	trips        *TripUseCase
	sampler      *geosampler.Sampler
	metrics      *metrics.Collector
	logger       *zap.Logger
}

func NewVisitUseCase(
	stationStore repository.StationStore,
	planStore repository.PlanStore,
	subStore repository.SubmissionStore,
	trips *TripUseCase,
	sampler *geosampler.Sampler,
	collector *metrics.Collector,
	logger *zap.Logger,
) *VisitUseCase {
	return &VisitUseCase{
		stationStore: stationStore,
		planStore:    planStore,
		subStore:     subStore,
		trips:        trips,
		sampler:      sampler,
		metrics:      collector,
		logger:       logger,
	}
}

// Capture stages one inspection visit. It requires an ongoing trip and a
// payload valid for the station's kind, with 2 to 4 photos attached.
func (uc *VisitUseCase) Capture(ctx context.Context, req *dto.CaptureVisitRequest) (*dto.CaptureVisitResponse, error) {
	station, err := uc.stationStore.GetByID(ctx, req.StationID)
	if err != nil {
		return nil, err
	}

	if len(req.Media) < minVisitPhotos || len(req.Media) > maxVisitPhotos {
		return nil, apperrors.ErrInsufficientMedia.WithDetails(map[string]interface{}{
			"got": len(req.Media),
			"min": minVisitPhotos,
			"max": maxVisitPhotos,
		})
	}

	if missing := domain.ValidateInspection(station.Kind, &req.Inspection); len(missing) > 0 {
		return nil, apperrors.ErrValidation.WithDetails(map[string]interface{}{
			"missing_fields": missing,
		})
	}

	trip, err := uc.trips.Ongoing(ctx)
	if err != nil {
		return nil, err
	}

	location := uc.sampler.Sample(ctx)

	distanceKm, err := uc.trips.RecordSegment(ctx, trip.ID, location)
	if err != nil {
		return nil, err
	}

	visit := domain.Visit{
		ID:        uuid.NewString(),
		StationID: station.ID,
		// RemoteID is empty for offline-started trips; the central store
		// then resolves the ongoing trip at submission time.
		TripID:             trip.RemoteID,
		VisitDate:          req.VisitDate,
		Location:           location,
		Inspection:         req.Inspection,
		DistanceFromPrevKm: distanceKm,
	}

	sub := &domain.Submission{
		Visit:  visit,
		Media:  blobsFromPhotos(req.Media),
		Status: domain.SubmissionPending,
	}
	subID, err := uc.subStore.Enqueue(ctx, sub)
	if err != nil {
		return nil, err
	}

	uc.stampLocalCaches(ctx, trip.PlanID, station.ID, &req.Inspection, req.VisitDate)
	uc.metrics.VisitsCaptured.Inc()

	uc.logger.Info("Visit captured",
		zap.String("submission_id", subID),
		zap.String("station_id", station.ID),
		zap.String("trip_id", trip.ID),
		zap.Float64("distance_from_prev_km", distanceKm),
		zap.Bool("location_captured", !location.IsZero()))

	return &dto.CaptureVisitResponse{
		SubmissionID:       subID,
		TripID:             trip.ID,
		DistanceFromPrevKm: distanceKm,
		LocationCaptured:   !location.IsZero(),
	}, nil
}

// stampLocalCaches marks the plan item visited and touches the station's
// last-visited metadata. Both are best-effort UI state: the visit itself
// is already durable in the submission queue.
func (uc *VisitUseCase) stampLocalCaches(ctx context.Context, planID, stationID string, ins *domain.Inspection, visitDate time.Time) {
	if planID != "" {
		if _, err := uc.planStore.MarkItemVisited(ctx, planID, stationID); err != nil {
			uc.logger.Warn("Failed to mark plan item visited",
				zap.String("plan_id", planID),
				zap.String("station_id", stationID),
				zap.Error(err))
		}
	}
	if err := uc.stationStore.TouchVisited(ctx, stationID, visitDate, ins.Meta.StaffName); err != nil {
		uc.logger.Warn("Failed to touch station visit metadata",
			zap.String("station_id", stationID),
			zap.Error(err))
	}
}

func blobsFromPhotos(photos []dto.CapturedPhoto) []domain.MediaBlob {
	blobs := make([]domain.MediaBlob, 0, len(photos))
	for _, p := range photos {
		blobs = append(blobs, domain.MediaBlob{
			ID:         uuid.NewString(),
			Data:       p.Data,
			Filename:   p.Filename,
			CapturedAt: p.CapturedAt,
			Location:   domain.Coordinate{Lat: p.Lat, Long: p.Long},
		})
	}
	return blobs
}
