package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/pkg/utils"
	"github.com/fieldsync-agent/internal/pkg/validator"
	"github.com/fieldsync-agent/internal/usecase"
	"github.com/fieldsync-agent/internal/usecase/dto"
)

// VisitHandler stages inspection visits locally.
type VisitHandler struct {
	visitUC *usecase.VisitUseCase
	logger  *zap.Logger
}

func NewVisitHandler(visitUC *usecase.VisitUseCase, logger *zap.Logger) *VisitHandler {
	return &VisitHandler{
		visitUC: visitUC,
		logger:  logger,
	}
}

// Capture godoc
// @Summary Capture a visit
// @Description Validates the inspection payload against the station kind, records the trip segment and stages the visit with its photos in the durable submission queue. Works fully offline.
// @Tags Visits
// @Accept json
// @Produce json
// @Param request body dto.CaptureVisitRequest true "Inspection payload with 2 to 4 photos"
// @Success 200 {object} utils.SuccessResponse{data=dto.CaptureVisitResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/visits [post]
func (h *VisitHandler) Capture(c *fiber.Ctx) error {
	var req dto.CaptureVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.visitUC.Capture(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}
