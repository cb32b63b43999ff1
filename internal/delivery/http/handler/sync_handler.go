package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	"github.com/fieldsync-agent/internal/pkg/utils"
	"github.com/fieldsync-agent/internal/usecase"
)

// SyncHandler exposes the sync engine: immediate cycles, background
// triggers and queue status.
type SyncHandler struct {
	syncUC     *usecase.SyncUseCase
	streams    repository.StreamRepository
	operatorID string
	logger     *zap.Logger
}

func NewSyncHandler(syncUC *usecase.SyncUseCase, streams repository.StreamRepository, operatorID string, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		syncUC:     syncUC,
		streams:    streams,
		operatorID: operatorID,
		logger:     logger,
	}
}

// Trigger godoc
// @Summary Run a sync cycle
// @Description Pulls reference data and pushes the pending queue. With async=true the cycle is handed to the background worker via the request stream and the call returns immediately.
// @Tags Sync
// @Produce json
// @Param async query bool false "Queue the cycle instead of running it inline"
// @Success 200 {object} utils.SuccessResponse{data=dto.SyncResultResponse}
// @Success 202 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sync [post]
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	if c.QueryBool("async") {
		return h.triggerAsync(c)
	}

	result, err := h.syncUC.Sync(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

func (h *SyncHandler) triggerAsync(c *fiber.Ctx) error {
	event := domain.SyncRequestEvent{
		OperatorID: h.operatorID,
		Source:     "api",
	}
	if err := h.streams.Publish(c.Context(), domain.StreamSyncRequest, event); err != nil {
		h.logger.Error("Failed to queue sync request", zap.Error(err))
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{
		Data: fiber.Map{"queued": true},
	})
}

// Status godoc
// @Summary Submission queue status
// @Tags Sync
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.SyncStatusResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	status, err := h.syncUC.Status(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, status, nil)
}
