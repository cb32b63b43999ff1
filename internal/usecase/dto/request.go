package dto

import (
	"time"

	"github.com/fieldsync-agent/internal/domain"
)

// StartTripRequest begins a field trip for a plan. Origin coordinates are
// acquired by the agent, not supplied by the caller.
type StartTripRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// CaptureVisitRequest stages one inspection visit locally.
type CaptureVisitRequest struct {
	StationID  string            `json:"station_id" validate:"required"`
	VisitDate  time.Time         `json:"visit_date" validate:"required"`
	Inspection domain.Inspection `json:"inspection" validate:"required"`
	Media      []CapturedPhoto   `json:"media" validate:"required,min=2,max=4,dive"`
}

// CapturedPhoto is one photo taken during a visit, base64 payload decoded
// by the handler before it reaches the use case.
type CapturedPhoto struct {
	Filename   string    `json:"filename" validate:"required"`
	Data       []byte    `json:"data" validate:"required"`
	CapturedAt time.Time `json:"captured_at"`
	Lat        float64   `json:"lat"`
	Long       float64   `json:"long"`
}

// SyncRequest triggers an on-demand sync cycle.
type SyncRequest struct {
	Source string `json:"source,omitempty"`
}
