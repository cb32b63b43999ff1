package domain

import "time"

// TripStatus enumerates field trip states.
type TripStatus string

const (
	TripOngoing   TripStatus = "ONGOING"
	TripCompleted TripStatus = "COMPLETED"
)

// Trip is one physical field outing. At most one trip per operator may be
// ONGOING at any time.
//
// RemoteID is the identifier assigned by the central store once the trip
// start has been acknowledged; it stays empty while the trip exists only
// locally (started offline).
type Trip struct {
	ID         string     `json:"id" db:"id"`
	RemoteID   string     `json:"remote_id,omitempty" db:"remote_id"`
	OperatorID string     `json:"operator_id" db:"operator_id"`
	PlanID     string     `json:"plan_id,omitempty" db:"plan_id"`
	Status     TripStatus `json:"status" db:"status"`
	StartedAt  time.Time  `json:"started_at" db:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty" db:"ended_at"`

	StartLat  float64 `json:"start_lat" db:"start_lat"`
	StartLong float64 `json:"start_long" db:"start_long"`
	EndLat    float64 `json:"end_lat" db:"end_lat"`
	EndLong   float64 `json:"end_long" db:"end_long"`

	// LastLat/LastLong track the most recently recorded point of the trip
	// (origin, then each visit in turn). The final leg on completion is
	// measured from here.
	LastLat  float64 `json:"-" db:"last_lat"`
	LastLong float64 `json:"-" db:"last_long"`

	// TotalDistanceKm is monotonically non-decreasing while ONGOING.
	TotalDistanceKm float64 `json:"total_distance_km" db:"total_distance_km"`
}

// Origin returns the trip's start coordinate.
func (t *Trip) Origin() Coordinate {
	return Coordinate{Lat: t.StartLat, Long: t.StartLong}
}

// LastPoint returns the most recently recorded point of the trip.
func (t *Trip) LastPoint() Coordinate {
	return Coordinate{Lat: t.LastLat, Long: t.LastLong}
}
