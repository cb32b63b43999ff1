package domain

import "time"

// Stream names for on-demand sync coordination.
const (
	StreamSyncRequest = "stream:sync:request"
	StreamSyncDone    = "stream:sync:done"
)

// SyncRequestEvent asks the sync worker to run a cycle. Source identifies
// the trigger (ui, cli, scheduler) for diagnostics only.
type SyncRequestEvent struct {
	OperatorID string `json:"operator_id"`
	Source     string `json:"source,omitempty"`
}

// SyncDoneEvent reports the outcome of one sync cycle.
type SyncDoneEvent struct {
	OperatorID   string    `json:"operator_id"`
	Pulled       bool      `json:"pulled"`
	Uploaded     int       `json:"uploaded"`
	StillPending int       `json:"still_pending"`
	Error        string    `json:"error,omitempty"`
	FinishedAt   time.Time `json:"finished_at"`
}

// StreamMessage is one message read from a stream.
type StreamMessage struct {
	ID   string
	Data string
}
