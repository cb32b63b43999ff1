package repository

import (
	"context"
	"time"

	"github.com/fieldsync-agent/internal/domain"
)

// StationStore is the local read-only cache of station reference data.
type StationStore interface {
	// ReplaceAll atomically swaps the whole collection for the given
	// records. Readers never observe a mix of old and new state.
	ReplaceAll(ctx context.Context, stations []domain.Station) error
	List(ctx context.Context) ([]domain.Station, error)
	GetByID(ctx context.Context, id string) (*domain.Station, error)
	// TouchVisited stamps the cached copy after a local capture so the UI
	// reflects the visit before the next pull.
	TouchVisited(ctx context.Context, id string, when time.Time, engineer string) error
}

// PlanStore holds the operator's assigned plans. Plans are
// server-authoritative except for item visited flags.
type PlanStore interface {
	ReplaceAll(ctx context.Context, operatorID string, plans []domain.Plan) error
	ListByOperator(ctx context.Context, operatorID string) ([]domain.Plan, error)
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	// MarkItemVisited sets visited on the first unvisited item for the
	// station. Returns false without error when every matching item is
	// already visited (idempotent no-op).
	MarkItemVisited(ctx context.Context, planID, stationID string) (bool, error)
}

// TripStore persists field trips.
type TripStore interface {
	// Create inserts a new ONGOING trip. It fails when an ONGOING trip
	// already exists for the operator.
	Create(ctx context.Context, trip *domain.Trip) error
	GetOngoing(ctx context.Context, operatorID string) (*domain.Trip, error)
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	// AddSegment adds distanceKm to the trip total and advances the last
	// recorded point.
	AddSegment(ctx context.Context, tripID string, distanceKm float64, point domain.Coordinate) error
	// Complete transitions the trip to COMPLETED, adding finalLegKm to the
	// total in the same statement so a concurrent AddSegment is never lost.
	Complete(ctx context.Context, trip *domain.Trip, finalLegKm float64) error
	SetRemoteID(ctx context.Context, tripID, remoteID string) error
}

// SubmissionStore is the durable pending-submission queue.
type SubmissionStore interface {
	// Enqueue persists a submission (visit plus raw media) with status
	// PENDING and returns its identifier.
	Enqueue(ctx context.Context, sub *domain.Submission) (string, error)
	// Retryable returns PENDING and ERROR submissions with their media,
	// oldest first. The result is a point-in-time snapshot.
	Retryable(ctx context.Context) ([]domain.Submission, error)
	MarkStatus(ctx context.Context, id string, status domain.SubmissionStatus, lastError string) error
	CountByStatus(ctx context.Context) (map[domain.SubmissionStatus]int, error)
}
