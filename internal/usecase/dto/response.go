package dto

import (
	"time"

	"github.com/fieldsync-agent/internal/domain"
)

// TodayPlanResponse is the "what to do today" view derived from local
// state: the covering plan with its items narrowed to today's schedule,
// or every item when none are dated today.
type TodayPlanResponse struct {
	Plan *domain.Plan `json:"plan"`
	// DisplayMode is TODAY when items are scheduled for today, or
	// ALL_AVAILABLE when the fallback policy kicked in.
	DisplayMode string            `json:"display_mode,omitempty"`
	Items       []domain.PlanItem `json:"items,omitempty"`
}

// SyncStatusResponse summarizes the pending queue for dashboards.
type SyncStatusResponse struct {
	Pending int `json:"pending"`
	Errored int `json:"errored"`
	Synced  int `json:"synced"`
}

// SyncResultResponse reports one completed sync cycle.
type SyncResultResponse struct {
	Pulled       bool      `json:"pulled"`
	Uploaded     int       `json:"uploaded"`
	StillPending int       `json:"still_pending"`
	FinishedAt   time.Time `json:"finished_at"`
}

// CaptureVisitResponse acknowledges a locally staged visit.
type CaptureVisitResponse struct {
	SubmissionID       string  `json:"submission_id"`
	TripID             string  `json:"trip_id,omitempty"`
	DistanceFromPrevKm float64 `json:"distance_from_prev_km"`
	LocationCaptured   bool    `json:"location_captured"`
}
