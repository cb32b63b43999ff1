package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/usecase"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanCoveringDate(t *testing.T) {
	plans := []domain.Plan{
		{ID: "past", StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 5), Status: domain.PlanApproved},
		{ID: "current", StartDate: day(2026, 3, 10), EndDate: day(2026, 3, 14), Status: domain.PlanApproved},
	}

	assert.Nil(t, usecase.PlanCoveringDate(plans, day(2026, 3, 8)))
	assert.Equal(t, "current", usecase.PlanCoveringDate(plans, day(2026, 3, 10)).ID)
	// Range ends are inclusive.
	assert.Equal(t, "current", usecase.PlanCoveringDate(plans, day(2026, 3, 14)).ID)
	assert.Equal(t, "past", usecase.PlanCoveringDate(plans, day(2026, 3, 5)).ID)
}

func TestItemsForDate(t *testing.T) {
	d10 := day(2026, 3, 10)
	d11 := day(2026, 3, 11)
	plan := &domain.Plan{
		ID: "plan-1",
		Items: []domain.PlanItem{
			{ID: "a", PlanDate: &d10},
			{ID: "b", PlanDate: &d11},
			{ID: "c"}, // undated, always in scope
		},
	}

	t.Run("returns items dated today plus undated ones", func(t *testing.T) {
		items, fellBack := usecase.ItemsForDate(plan, d10)
		assert.False(t, fellBack)
		assert.Len(t, items, 2)
		assert.Equal(t, "a", items[0].ID)
		assert.Equal(t, "c", items[1].ID)
	})

	t.Run("falls back to every item when nothing is dated today", func(t *testing.T) {
		dated := &domain.Plan{
			Items: []domain.PlanItem{
				{ID: "a", PlanDate: &d10},
				{ID: "b", PlanDate: &d11},
			},
		}
		items, fellBack := usecase.ItemsForDate(dated, day(2026, 3, 12))
		assert.True(t, fellBack)
		assert.Len(t, items, 2)
	})
}

func TestIsComplete(t *testing.T) {
	assert.False(t, usecase.IsComplete(&domain.Plan{
		Items: []domain.PlanItem{{Visited: true}, {Visited: false}},
	}))
	assert.True(t, usecase.IsComplete(&domain.Plan{
		Items: []domain.PlanItem{{Visited: true}, {Visited: true}},
	}))
}

func TestPlanUseCase_TodayPlan(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	today := day(2026, 3, 10)

	t.Run("no covering plan yields an empty view", func(t *testing.T) {
		planStore := &MockPlanStore{}
		planStore.On("ListByOperator", ctx, testOperator).Return([]domain.Plan{}, nil)

		uc := usecase.NewPlanUseCase(planStore, testOperator, logger)
		resp, err := uc.TodayPlan(ctx, today)

		assert.NoError(t, err)
		assert.Nil(t, resp.Plan)
		assert.Empty(t, resp.Items)
	})

	t.Run("completed plans are out of scope even when their dates cover today", func(t *testing.T) {
		planStore := &MockPlanStore{}
		planStore.On("ListByOperator", ctx, testOperator).Return([]domain.Plan{
			{ID: "done", StartDate: day(2026, 3, 9), EndDate: day(2026, 3, 12), Status: domain.PlanCompleted},
		}, nil)

		uc := usecase.NewPlanUseCase(planStore, testOperator, logger)
		resp, err := uc.TodayPlan(ctx, today)

		assert.NoError(t, err)
		assert.Nil(t, resp.Plan)
	})

	t.Run("fallback is surfaced in the display mode", func(t *testing.T) {
		planStore := &MockPlanStore{}
		other := day(2026, 3, 11)
		planStore.On("ListByOperator", ctx, testOperator).Return([]domain.Plan{
			{
				ID:        "plan-1",
				StartDate: day(2026, 3, 9),
				EndDate:   day(2026, 3, 12),
				Status:    domain.PlanApproved,
				Items:     []domain.PlanItem{{ID: "a", PlanDate: &other}},
			},
		}, nil)

		uc := usecase.NewPlanUseCase(planStore, testOperator, logger)
		resp, err := uc.TodayPlan(ctx, today)

		assert.NoError(t, err)
		assert.Equal(t, "ALL_AVAILABLE", resp.DisplayMode)
		assert.Len(t, resp.Items, 1)
	})
}

func TestPlanUseCase_MarkVisited(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("already visited is a silent no-op", func(t *testing.T) {
		planStore := &MockPlanStore{}
		planStore.On("MarkItemVisited", ctx, "plan-1", "st-1").Return(false, nil)

		uc := usecase.NewPlanUseCase(planStore, testOperator, logger)
		assert.NoError(t, uc.MarkVisited(ctx, "plan-1", "st-1"))
	})
}
