package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	apperrors "github.com/fieldsync-agent/internal/pkg/errors"
	"github.com/fieldsync-agent/internal/pkg/geo"
)

// TripUseCase drives the trip lifecycle: NONE -> ONGOING -> COMPLETED,
// one live trip per operator, with distance accumulated segment by
// segment as visits are recorded.
type TripUseCase struct {
	tripStore  repository.TripStore
	central    repository.CentralRepository
	operatorID string
	logger     *zap.Logger
}

func NewTripUseCase(
	tripStore repository.TripStore,
	central repository.CentralRepository,
	operatorID string,
	logger *zap.Logger,
) *TripUseCase {
	return &TripUseCase{
		tripStore:  tripStore,
		central:    central,
		operatorID: operatorID,
		logger:     logger,
	}
}

// StartTrip creates an ONGOING trip at origin with zero distance. When a
// trip is already ongoing it fails with TRIP_CONFLICT carrying the
// existing trip's id, so callers redirect instead of silently resuming.
//
// The start is registered with the central store best-effort: offline the
// trip stays local (empty RemoteID) and visits push without a trip id.
func (uc *TripUseCase) StartTrip(ctx context.Context, planID string, origin domain.Coordinate) (*domain.Trip, error) {
	if existing, err := uc.tripStore.GetOngoing(ctx, uc.operatorID); err == nil {
		return nil, apperrors.ErrTripConflict.WithDetails(map[string]interface{}{
			"trip_id": existing.ID,
		})
	} else if !errors.Is(err, apperrors.ErrNoActiveTrip) {
		return nil, err
	}

	trip := &domain.Trip{
		ID:         uuid.NewString(),
		OperatorID: uc.operatorID,
		PlanID:     planID,
		Status:     domain.TripOngoing,
		StartedAt:  time.Now().UTC(),
		StartLat:   origin.Lat,
		StartLong:  origin.Long,
		LastLat:    origin.Lat,
		LastLong:   origin.Long,
	}

	if err := uc.tripStore.Create(ctx, trip); err != nil {
		return nil, err
	}

	uc.registerRemoteStart(ctx, trip, origin)

	uc.logger.Info("Trip started",
		zap.String("trip_id", trip.ID),
		zap.String("plan_id", planID),
		zap.Bool("has_location", !origin.IsZero()))
	return trip, nil
}

func (uc *TripUseCase) registerRemoteStart(ctx context.Context, trip *domain.Trip, origin domain.Coordinate) {
	remote, err := uc.central.StartTrip(ctx, uc.operatorID, trip.PlanID, origin)
	if err != nil {
		// Offline start is fine; the central store resolves the operator's
		// ongoing trip at visit submission time.
		uc.logger.Warn("Trip start not registered with central store",
			zap.String("trip_id", trip.ID),
			zap.Error(err))
		return
	}

	trip.RemoteID = remote.RemoteID
	if err := uc.tripStore.SetRemoteID(ctx, trip.ID, remote.RemoteID); err != nil {
		uc.logger.Error("Failed to persist remote trip id", zap.Error(err))
	}
}

// Ongoing returns the operator's current ONGOING trip.
func (uc *TripUseCase) Ongoing(ctx context.Context) (*domain.Trip, error) {
	return uc.tripStore.GetOngoing(ctx, uc.operatorID)
}

// RecordSegment accumulates the leg from the trip's last recorded point to
// point. A segment with a sentinel endpoint contributes zero distance and
// still advances the last point when the new point is real.
func (uc *TripUseCase) RecordSegment(ctx context.Context, tripID string, point domain.Coordinate) (float64, error) {
	trip, err := uc.tripStore.GetByID(ctx, tripID)
	if err != nil {
		return 0, err
	}
	if trip.Status != domain.TripOngoing {
		return 0, apperrors.ErrNoActiveTrip
	}

	distanceKm, ok := geo.Distance(trip.LastPoint(), point)
	if !ok {
		distanceKm = 0
	}

	next := point
	if point.IsZero() {
		// Keep the previous point so a later real fix measures from the
		// last known position, not from the sentinel.
		next = trip.LastPoint()
	}

	if err := uc.tripStore.AddSegment(ctx, tripID, distanceKm, next); err != nil {
		return 0, err
	}
	return distanceKm, nil
}

// CompleteTrip accounts the final leg from the last recorded point to end,
// stamps the end time and transitions to COMPLETED. The owning plan's
// status is untouched: multi-day itineraries stay open across trips.
func (uc *TripUseCase) CompleteTrip(ctx context.Context, end domain.Coordinate) (*domain.Trip, error) {
	trip, err := uc.tripStore.GetOngoing(ctx, uc.operatorID)
	if err != nil {
		return nil, err
	}

	finalLeg, ok := geo.Distance(trip.LastPoint(), end)
	if !ok {
		finalLeg = 0
	}

	now := time.Now().UTC()
	trip.Status = domain.TripCompleted
	trip.EndedAt = &now
	trip.EndLat = end.Lat
	trip.EndLong = end.Long

	// The store adds the leg in place; mirror it here for the response.
	if err := uc.tripStore.Complete(ctx, trip, finalLeg); err != nil {
		return nil, err
	}
	trip.TotalDistanceKm += finalLeg

	if trip.RemoteID != "" {
		if err := uc.central.CompleteTrip(ctx, trip.RemoteID, end); err != nil {
			uc.logger.Warn("Trip completion not registered with central store",
				zap.String("trip_id", trip.ID),
				zap.Error(err))
		}
	}

	uc.logger.Info("Trip completed",
		zap.String("trip_id", trip.ID),
		zap.Float64("total_distance_km", trip.TotalDistanceKm))
	return trip, nil
}
