package repository

import (
	"context"

	"github.com/fieldsync-agent/internal/domain"
)

// CentralRepository is the remote submission and reference-data interface
// of the central authority. Transport failures surface as NETWORK_ERROR;
// media failures as UPLOAD_ERROR.
type CentralRepository interface {
	// FetchStations returns the full station snapshot.
	FetchStations(ctx context.Context) ([]domain.Station, error)
	// FetchPlans returns the operator's assigned plans with nested items.
	FetchPlans(ctx context.Context, operatorID string) ([]domain.Plan, error)

	// StartTrip registers a trip start and returns the remote trip. A
	// TRIP_CONFLICT error means a trip is already ongoing server-side.
	StartTrip(ctx context.Context, operatorID, planID string, origin domain.Coordinate) (*domain.Trip, error)
	// CompleteTrip closes the remote trip, accounting the final leg
	// server-side with the same sentinel semantics as the local engine.
	CompleteTrip(ctx context.Context, remoteTripID string, end domain.Coordinate) error

	// SubmitVisit records a visit. When visit.TripID is empty the central
	// store resolves the operator's current ONGOING trip or fails with
	// NOT_FOUND.
	SubmitVisit(ctx context.Context, visit *domain.Visit) (string, error)
	// UploadMedia uploads one blob and returns its durable remote URL.
	UploadMedia(ctx context.Context, blob *domain.MediaBlob) (string, error)
}
