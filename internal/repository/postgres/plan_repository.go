package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	apperrors "github.com/fieldsync-agent/internal/pkg/errors"
)

type planRepository struct {
	db *DB
}

func NewPlanRepository(db *DB) repository.PlanStore {
	return &planRepository{db: db}
}

// ReplaceAll swaps the operator's plan set in one transaction. Items are
// cascade-deleted with their plans.
func (r *planRepository) ReplaceAll(ctx context.Context, operatorID string, plans []domain.Plan) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE operator_id = $1`, operatorID); err != nil {
		return fmt.Errorf("failed to clear plans: %w", err)
	}

	const insertPlan = `
		INSERT INTO plans (id, operator_id, start_date, end_date, status)
		VALUES (:id, :operator_id, :start_date, :end_date, :status)`

	const insertItem = `
		INSERT INTO plan_items
			(id, plan_id, station_id, station_number, plan_date,
			 item_order, purpose, visited, visit_id)
		VALUES
			(:id, :plan_id, :station_id, :station_number, :plan_date,
			 :item_order, :purpose, :visited, :visit_id)`

	for i := range plans {
		plan := &plans[i]
		if _, err := tx.NamedExecContext(ctx, insertPlan, plan); err != nil {
			return fmt.Errorf("failed to insert plan %s: %w", plan.ID, err)
		}
		for j := range plan.Items {
			if _, err := tx.NamedExecContext(ctx, insertItem, &plan.Items[j]); err != nil {
				return fmt.Errorf("failed to insert plan item %s: %w", plan.Items[j].ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan snapshot: %w", err)
	}

	r.db.logger.Info("Plan cache replaced",
		zap.String("operator_id", operatorID),
		zap.Int("count", len(plans)))
	return nil
}

func (r *planRepository) ListByOperator(ctx context.Context, operatorID string) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := r.db.SelectContext(ctx, &plans,
		`SELECT id, operator_id, start_date, end_date, status
		 FROM plans WHERE operator_id = $1
		 ORDER BY start_date DESC`, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	for i := range plans {
		if err := r.loadItems(ctx, &plans[i]); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.db.GetContext(ctx, &plan,
		`SELECT id, operator_id, start_date, end_date, status
		 FROM plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if err := r.loadItems(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) loadItems(ctx context.Context, plan *domain.Plan) error {
	err := r.db.SelectContext(ctx, &plan.Items,
		`SELECT id, plan_id, station_id, station_number, plan_date,
		        item_order, purpose, visited, visit_id
		 FROM plan_items WHERE plan_id = $1
		 ORDER BY plan_date NULLS LAST, item_order`, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to load plan items: %w", err)
	}
	return nil
}

// MarkItemVisited flips visited on the first unvisited item for the
// station. Returns false when nothing changed, which callers treat as an
// idempotent no-op.
func (r *planRepository) MarkItemVisited(ctx context.Context, planID, stationID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plan_items SET visited = TRUE
		 WHERE id = (
			SELECT id FROM plan_items
			WHERE plan_id = $1 AND station_id = $2 AND visited = FALSE
			ORDER BY plan_date NULLS LAST, item_order
			LIMIT 1
		 )`, planID, stationID)
	if err != nil {
		return false, fmt.Errorf("failed to mark item visited: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}
