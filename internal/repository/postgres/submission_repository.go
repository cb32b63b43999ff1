package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
)

type submissionRepository struct {
	db *DB
}

func NewSubmissionRepository(db *DB) repository.SubmissionStore {
	return &submissionRepository{db: db}
}

// submissionRow is the storage shape: the visit is a JSON document, media
// blobs live in their own table so Retryable can stream them in order.
type submissionRow struct {
	ID         string     `db:"id"`
	Status     string     `db:"status"`
	Visit      []byte     `db:"visit"`
	Attempts   int        `db:"attempts"`
	LastError  string     `db:"last_error"`
	EnqueuedAt time.Time  `db:"enqueued_at"`
	SyncedAt   *time.Time `db:"synced_at"`
}

type mediaRow struct {
	ID         string    `db:"id"`
	Filename   string    `db:"filename"`
	Data       []byte    `db:"data"`
	CapturedAt time.Time `db:"captured_at"`
	Lat        float64   `db:"lat"`
	Long       float64   `db:"long"`
}

func (r *submissionRepository) Enqueue(ctx context.Context, sub *domain.Submission) (string, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	sub.Status = domain.SubmissionPending
	if sub.EnqueuedAt.IsZero() {
		sub.EnqueuedAt = time.Now().UTC()
	}

	visitJSON, err := json.Marshal(sub.Visit)
	if err != nil {
		return "", fmt.Errorf("failed to marshal visit: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO submissions (id, status, visit, attempts, last_error, enqueued_at)
		 VALUES ($1, $2, $3, 0, '', $4)`,
		sub.ID, sub.Status, visitJSON, sub.EnqueuedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert submission: %w", err)
	}

	for i := range sub.Media {
		blob := &sub.Media[i]
		if blob.ID == "" {
			blob.ID = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO submission_media
				(id, submission_id, filename, data, captured_at, lat, long, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			blob.ID, sub.ID, blob.Filename, blob.Data, blob.CapturedAt,
			blob.Location.Lat, blob.Location.Long, i)
		if err != nil {
			return "", fmt.Errorf("failed to insert submission media: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit submission: %w", err)
	}

	r.db.logger.Info("Submission enqueued",
		zap.String("submission_id", sub.ID),
		zap.String("station_id", sub.Visit.StationID),
		zap.Int("media_count", len(sub.Media)))
	return sub.ID, nil
}

// Retryable returns PENDING and ERROR submissions oldest first. The slice
// is a point-in-time snapshot: rows enqueued while a push is draining are
// picked up on the next cycle, not mid-iteration.
func (r *submissionRepository) Retryable(ctx context.Context) ([]domain.Submission, error) {
	var rows []submissionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, status, visit, attempts, last_error, enqueued_at, synced_at
		 FROM submissions
		 WHERE status IN ($1, $2)
		 ORDER BY enqueued_at, id`,
		domain.SubmissionPending, domain.SubmissionError)
	if err != nil {
		return nil, fmt.Errorf("failed to list retryable submissions: %w", err)
	}

	subs := make([]domain.Submission, 0, len(rows))
	for _, row := range rows {
		sub := domain.Submission{
			ID:         row.ID,
			Status:     domain.SubmissionStatus(row.Status),
			Attempts:   row.Attempts,
			LastError:  row.LastError,
			EnqueuedAt: row.EnqueuedAt,
			SyncedAt:   row.SyncedAt,
		}
		if err := json.Unmarshal(row.Visit, &sub.Visit); err != nil {
			return nil, fmt.Errorf("failed to unmarshal visit for submission %s: %w", row.ID, err)
		}

		media, err := r.loadMedia(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		sub.Media = media
		subs = append(subs, sub)
	}
	return subs, nil
}

func (r *submissionRepository) loadMedia(ctx context.Context, submissionID string) ([]domain.MediaBlob, error) {
	var rows []mediaRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, filename, data, captured_at, lat, long
		 FROM submission_media
		 WHERE submission_id = $1
		 ORDER BY position`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission media: %w", err)
	}

	blobs := make([]domain.MediaBlob, 0, len(rows))
	for _, row := range rows {
		blobs = append(blobs, domain.MediaBlob{
			ID:         row.ID,
			Filename:   row.Filename,
			Data:       row.Data,
			CapturedAt: row.CapturedAt,
			Location:   domain.Coordinate{Lat: row.Lat, Long: row.Long},
		})
	}
	return blobs, nil
}

func (r *submissionRepository) MarkStatus(ctx context.Context, id string, status domain.SubmissionStatus, lastError string) error {
	var syncedAt *time.Time
	if status == domain.SubmissionSynced {
		now := time.Now().UTC()
		syncedAt = &now
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE submissions
		 SET status = $2, last_error = $3, attempts = attempts + 1,
		     synced_at = COALESCE($4, synced_at)
		 WHERE id = $1`,
		id, status, lastError, syncedAt)
	if err != nil {
		return fmt.Errorf("failed to mark submission status: %w", err)
	}
	return nil
}

func (r *submissionRepository) CountByStatus(ctx context.Context) (map[domain.SubmissionStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS count FROM submissions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	counts := make(map[domain.SubmissionStatus]int, len(rows))
	for _, row := range rows {
		counts[domain.SubmissionStatus(row.Status)] = row.Count
	}
	return counts, nil
}
