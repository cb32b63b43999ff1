package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	"github.com/fieldsync-agent/internal/usecase/dto"
)

// PlanUseCase derives "what to do today" and plan completion purely from
// local store state; it never calls the central store.
type PlanUseCase struct {
	planStore  repository.PlanStore
	operatorID string
	logger     *zap.Logger
}

func NewPlanUseCase(planStore repository.PlanStore, operatorID string, logger *zap.Logger) *PlanUseCase {
	return &PlanUseCase{
		planStore:  planStore,
		operatorID: operatorID,
		logger:     logger,
	}
}

// ActivePlans returns the operator's plans that still have outstanding
// work (status not COMPLETED or CANCELLED).
func (uc *PlanUseCase) ActivePlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := uc.planStore.ListByOperator(ctx, uc.operatorID)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active, nil
}

// PlanCoveringDate returns the first active plan whose date range contains
// date, inclusive. Nil means "no plan today" and is not an error.
func PlanCoveringDate(plans []domain.Plan, date time.Time) *domain.Plan {
	for i := range plans {
		if plans[i].CoversDate(date) {
			return &plans[i]
		}
	}
	return nil
}

// ItemsForDate returns the plan's items scheduled for date. When none are
// (the operator is ahead of or behind schedule), it falls back to every
// item of the plan so work is never blocked by day misalignment. Items
// with no date are always part of the day's schedule.
func ItemsForDate(plan *domain.Plan, date time.Time) ([]domain.PlanItem, bool) {
	var todays []domain.PlanItem
	for _, item := range plan.Items {
		if item.PlanDate == nil || domain.SameDay(*item.PlanDate, date) {
			todays = append(todays, item)
		}
	}
	if len(todays) > 0 {
		return todays, false
	}
	return plan.Items, true
}

// IsComplete reports whether every item of the plan has been visited.
func IsComplete(plan *domain.Plan) bool {
	for _, item := range plan.Items {
		if !item.Visited {
			return false
		}
	}
	return true
}

// TodayPlan assembles the dashboard view for date: the covering plan and
// its effective item list.
func (uc *PlanUseCase) TodayPlan(ctx context.Context, date time.Time) (*dto.TodayPlanResponse, error) {
	active, err := uc.ActivePlans(ctx)
	if err != nil {
		return nil, err
	}

	plan := PlanCoveringDate(active, date)
	if plan == nil {
		return &dto.TodayPlanResponse{}, nil
	}

	items, fellBack := ItemsForDate(plan, date)
	mode := "TODAY"
	if fellBack {
		mode = "ALL_AVAILABLE"
	}

	return &dto.TodayPlanResponse{
		Plan:        plan,
		DisplayMode: mode,
		Items:       items,
	}, nil
}

// MarkVisited advances the visited flag for the first unvisited item of
// the station in the plan. Calling it again for an already-visited
// station is a no-op, not an error.
func (uc *PlanUseCase) MarkVisited(ctx context.Context, planID, stationID string) error {
	changed, err := uc.planStore.MarkItemVisited(ctx, planID, stationID)
	if err != nil {
		return err
	}
	if !changed {
		uc.logger.Debug("Plan item already visited",
			zap.String("plan_id", planID),
			zap.String("station_id", stationID))
	}
	return nil
}

// GetByID returns one plan with its items.
func (uc *PlanUseCase) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return uc.planStore.GetByID(ctx, id)
}
