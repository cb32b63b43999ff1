package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/geosampler"
	"github.com/fieldsync-agent/internal/pkg/utils"
	"github.com/fieldsync-agent/internal/pkg/validator"
	"github.com/fieldsync-agent/internal/usecase"
	"github.com/fieldsync-agent/internal/usecase/dto"
)

// TripHandler drives the trip lifecycle. Start and complete both acquire
// the current position themselves; callers never supply coordinates.
type TripHandler struct {
	tripUC  *usecase.TripUseCase
	sampler *geosampler.Sampler
	logger  *zap.Logger
}

func NewTripHandler(tripUC *usecase.TripUseCase, sampler *geosampler.Sampler, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripUC:  tripUC,
		sampler: sampler,
		logger:  logger,
	}
}

// Start godoc
// @Summary Start a trip
// @Description Starts an ONGOING trip for the configured operator at the current position. Fails with TRIP_CONFLICT when a trip is already ongoing; the response details carry the existing trip id.
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body dto.StartTripRequest true "Plan to work"
// @Success 200 {object} utils.SuccessResponse{data=domain.Trip}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/trips/start [post]
func (h *TripHandler) Start(c *fiber.Ctx) error {
	var req dto.StartTripRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	origin := h.sampler.Sample(c.Context())
	trip, err := h.tripUC.StartTrip(c.Context(), req.PlanID, origin)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trip, nil)
}

// Complete godoc
// @Summary Complete the ongoing trip
// @Description Accounts the final leg to the current position and transitions the trip to COMPLETED. The owning plan stays open.
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Trip}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/complete [post]
func (h *TripHandler) Complete(c *fiber.Ctx) error {
	end := h.sampler.Sample(c.Context())
	trip, err := h.tripUC.CompleteTrip(c.Context(), end)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trip, nil)
}

// Current godoc
// @Summary Get the ongoing trip
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Trip}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/current [get]
func (h *TripHandler) Current(c *fiber.Ctx) error {
	trip, err := h.tripUC.Ongoing(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trip, nil)
}
