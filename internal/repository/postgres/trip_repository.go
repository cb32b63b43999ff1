package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	apperrors "github.com/fieldsync-agent/internal/pkg/errors"
)

// uniqueViolationCode is postgres error class 23505 (unique_violation).
const uniqueViolationCode = "23505"

type tripRepository struct {
	db *DB
}

func NewTripRepository(db *DB) repository.TripStore {
	return &tripRepository{db: db}
}

// Create inserts an ONGOING trip. The partial unique index on
// (operator_id) WHERE status = 'ONGOING' enforces the single-active-trip
// invariant even under concurrent starts; the violation maps to
// TRIP_CONFLICT.
func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	const insert = `
		INSERT INTO trips
			(id, remote_id, operator_id, plan_id, status, started_at,
			 start_lat, start_long, last_lat, last_long, total_distance_km)
		VALUES
			(:id, :remote_id, :operator_id, :plan_id, :status, :started_at,
			 :start_lat, :start_long, :last_lat, :last_long, :total_distance_km)`

	if _, err := r.db.NamedExecContext(ctx, insert, trip); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrTripConflict
		}
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

func (r *tripRepository) GetOngoing(ctx context.Context, operatorID string) (*domain.Trip, error) {
	var trip domain.Trip
	err := r.db.GetContext(ctx, &trip,
		`SELECT * FROM trips WHERE operator_id = $1 AND status = 'ONGOING'`,
		operatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNoActiveTrip
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ongoing trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	var trip domain.Trip
	err := r.db.GetContext(ctx, &trip, `SELECT * FROM trips WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNoActiveTrip
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// AddSegment accumulates distance and advances the last recorded point.
// Only ONGOING trips accumulate; distance never decreases.
func (r *tripRepository) AddSegment(ctx context.Context, tripID string, distanceKm float64, point domain.Coordinate) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trips
		 SET total_distance_km = total_distance_km + $2,
		     last_lat = $3, last_long = $4
		 WHERE id = $1 AND status = 'ONGOING'`,
		tripID, distanceKm, point.Lat, point.Long)
	if err != nil {
		return fmt.Errorf("failed to add trip segment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNoActiveTrip
	}
	return nil
}

// Complete adds the final leg with the same in-place increment as
// AddSegment, so a segment recorded between the caller's read and this
// update is still counted.
func (r *tripRepository) Complete(ctx context.Context, trip *domain.Trip, finalLegKm float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trips
		 SET status = $2, ended_at = $3, end_lat = $4, end_long = $5,
		     total_distance_km = total_distance_km + $6
		 WHERE id = $1 AND status = 'ONGOING'`,
		trip.ID, trip.Status, trip.EndedAt, trip.EndLat, trip.EndLong,
		finalLegKm)
	if err != nil {
		return fmt.Errorf("failed to complete trip: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNoActiveTrip
	}
	return nil
}

func (r *tripRepository) SetRemoteID(ctx context.Context, tripID, remoteID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE trips SET remote_id = $2 WHERE id = $1`, tripID, remoteID)
	if err != nil {
		return fmt.Errorf("failed to set trip remote id: %w", err)
	}
	return nil
}

// isUniqueViolation matches postgres unique_violation (23505) from the
// pgx driver, unwrapping as needed.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
