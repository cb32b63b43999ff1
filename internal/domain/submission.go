package domain

import "time"

// SubmissionStatus enumerates pending submission states.
//
// ERROR is distinct from PENDING so a failed upload is visible as such, but
// both are retried uniformly; only SYNCED submissions are excluded from
// retry. Submissions are never deleted automatically - SYNCED rows are
// retained for audit.
type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "PENDING"
	SubmissionSynced  SubmissionStatus = "SYNCED"
	SubmissionError   SubmissionStatus = "ERROR"
)

// Submission wraps a locally captured visit awaiting acknowledgment by the
// central store, together with its raw media blobs.
type Submission struct {
	ID         string           `json:"id" db:"id"`
	Visit      Visit            `json:"visit"`
	Media      []MediaBlob      `json:"media,omitempty"`
	Status     SubmissionStatus `json:"status" db:"status"`
	Attempts   int              `json:"attempts" db:"attempts"`
	LastError  string           `json:"last_error,omitempty" db:"last_error"`
	EnqueuedAt time.Time        `json:"enqueued_at" db:"enqueued_at"`
	SyncedAt   *time.Time       `json:"synced_at,omitempty" db:"synced_at"`
}
