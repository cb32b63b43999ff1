package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	apperrors "github.com/fieldsync-agent/internal/pkg/errors"
)

type stationRepository struct {
	db *DB
}

func NewStationRepository(db *DB) repository.StationStore {
	return &stationRepository{db: db}
}

// ReplaceAll swaps the whole station cache inside one transaction so
// readers never observe a mix of old and new snapshot.
func (r *stationRepository) ReplaceAll(ctx context.Context, stations []domain.Station) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
		return fmt.Errorf("failed to clear stations: %w", err)
	}

	const insert = `
		INSERT INTO stations
			(id, station_number, kind, district, block, panchayat,
			 latitude, longitude, last_visited, engineer_name)
		VALUES
			(:id, :station_number, :kind, :district, :block, :panchayat,
			 :latitude, :longitude, :last_visited, :engineer_name)`

	for i := range stations {
		if _, err := tx.NamedExecContext(ctx, insert, &stations[i]); err != nil {
			return fmt.Errorf("failed to insert station %s: %w", stations[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit station snapshot: %w", err)
	}

	r.db.logger.Info("Station cache replaced", zap.Int("count", len(stations)))
	return nil
}

func (r *stationRepository) List(ctx context.Context) ([]domain.Station, error) {
	var stations []domain.Station
	err := r.db.SelectContext(ctx, &stations,
		`SELECT * FROM stations ORDER BY station_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	return stations, nil
}

func (r *stationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	var station domain.Station
	err := r.db.GetContext(ctx, &station,
		`SELECT * FROM stations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	return &station, nil
}

func (r *stationRepository) TouchVisited(ctx context.Context, id string, when time.Time, engineer string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stations SET last_visited = $2, engineer_name = COALESCE(NULLIF($3, ''), engineer_name)
		 WHERE id = $1`,
		id, when, engineer)
	if err != nil {
		return fmt.Errorf("failed to touch station: %w", err)
	}
	return nil
}
