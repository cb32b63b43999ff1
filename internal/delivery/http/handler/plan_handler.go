package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/pkg/utils"
	"github.com/fieldsync-agent/internal/usecase"
)

// PlanHandler serves the operator's plans and the daily work view.
type PlanHandler struct {
	planUC *usecase.PlanUseCase
	logger *zap.Logger
}

func NewPlanHandler(planUC *usecase.PlanUseCase, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planUC: planUC,
		logger: logger,
	}
}

// Today godoc
// @Summary Today's work view
// @Description Returns the plan covering today with its items narrowed to today's schedule. When no item is dated today the full item list is returned with display_mode ALL_AVAILABLE.
// @Tags Plans
// @Produce json
// @Param date query string false "Override the reference date (RFC 3339 date)"
// @Success 200 {object} utils.SuccessResponse{data=dto.TodayPlanResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/plans/today [get]
func (h *PlanHandler) Today(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		date = parsed
	}

	view, err := h.planUC.TodayPlan(c.Context(), date)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, view, nil)
}

// Active godoc
// @Summary List active plans
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Plan}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/plans/active [get]
func (h *PlanHandler) Active(c *fiber.Ctx) error {
	plans, err := h.planUC.ActivePlans(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, plans, &utils.Meta{Total: len(plans)})
}

// Get godoc
// @Summary Get one plan with items
// @Tags Plans
// @Produce json
// @Param id path string true "Plan id"
// @Success 200 {object} utils.SuccessResponse{data=domain.Plan}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/plans/{id} [get]
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	plan, err := h.planUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, plan, nil)
}
