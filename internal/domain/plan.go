package domain

import "time"

// PlanStatus enumerates the lifecycle states of a tour plan. Transitions
// are driven by the central store; the agent only advances item visited
// flags.
type PlanStatus string

const (
	PlanPlanned   PlanStatus = "PLANNED"
	PlanApproved  PlanStatus = "APPROVED"
	PlanRejected  PlanStatus = "REJECTED"
	PlanCancelled PlanStatus = "CANCELLED"
	PlanArchived  PlanStatus = "ARCHIVED"
	PlanCompleted PlanStatus = "COMPLETED"
)

// Plan is a time-boxed itinerary assigned to one operator. The date range
// and item set are fixed once created; only item visited flags and the
// status change afterwards.
type Plan struct {
	ID         string     `json:"id" db:"id"`
	OperatorID string     `json:"operator_id" db:"operator_id"`
	StartDate  time.Time  `json:"start_date" db:"start_date"`
	EndDate    time.Time  `json:"end_date" db:"end_date"`
	Status     PlanStatus `json:"status" db:"status"`
	Items      []PlanItem `json:"items"`
}

// PlanItem schedules one station visit within a plan.
type PlanItem struct {
	ID            string     `json:"id" db:"id"`
	PlanID        string     `json:"plan_id" db:"plan_id"`
	StationID     string     `json:"station_id" db:"station_id"`
	StationNumber string     `json:"station_number" db:"station_number"`
	PlanDate      *time.Time `json:"plan_date,omitempty" db:"plan_date"`
	Order         int        `json:"order" db:"item_order"`
	Purpose       string     `json:"purpose" db:"purpose"`
	Visited       bool       `json:"visited" db:"visited"`
	VisitID       string     `json:"visit_id,omitempty" db:"visit_id"`
}

// IsActive reports whether the plan still has outstanding work from the
// operator's point of view.
func (p *Plan) IsActive() bool {
	return p.Status != PlanCompleted && p.Status != PlanCancelled
}

// CoversDate reports whether date falls inside [StartDate, EndDate],
// inclusive on both ends, comparing calendar days only.
func (p *Plan) CoversDate(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(p.StartDate)) && !d.After(truncateToDay(p.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
