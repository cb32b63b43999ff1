package domain

import "time"

// Visit is an immutable record of one station inspection. Once durably
// recorded, locally or remotely, it is never edited or deleted.
type Visit struct {
	ID        string `json:"id,omitempty"`
	StationID string `json:"station_id"`

	// TripID is the central store's trip identifier. Empty when the owning
	// trip was started offline; the central store then resolves the
	// operator's current ONGOING trip on submission.
	TripID string `json:"trip_id,omitempty"`

	VisitDate  time.Time  `json:"visit_date"`
	Location   Coordinate `json:"location"`
	Inspection Inspection `json:"inspection"`

	// MediaRefs are remote URLs, populated only after upload.
	MediaRefs []string `json:"media_refs,omitempty"`

	DistanceFromPrevKm float64 `json:"distance_from_prev_km"`
}

// MediaBlob is one captured photo held locally until upload. Position and
// capture time are embedded so the central store can verify provenance.
type MediaBlob struct {
	ID         string     `json:"id" db:"id"`
	Data       []byte     `json:"-" db:"data"`
	Filename   string     `json:"filename" db:"filename"`
	CapturedAt time.Time  `json:"captured_at" db:"captured_at"`
	Location   Coordinate `json:"location"`
}
