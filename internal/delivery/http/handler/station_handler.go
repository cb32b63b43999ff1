package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain/repository"
	"github.com/fieldsync-agent/internal/pkg/utils"
)

// StationHandler serves the locally cached station catalogue.
type StationHandler struct {
	stations repository.StationStore
	logger   *zap.Logger
}

func NewStationHandler(stations repository.StationStore, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stations: stations,
		logger:   logger,
	}
}

// List godoc
// @Summary List cached stations
// @Description Returns the full station snapshot from the local cache. The snapshot is refreshed by the sync engine.
// @Tags Stations
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Station}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) List(c *fiber.Ctx) error {
	stations, err := h.stations.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stations, &utils.Meta{Total: len(stations)})
}

// Get godoc
// @Summary Get one station
// @Tags Stations
// @Produce json
// @Param id path string true "Station id"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [get]
func (h *StationHandler) Get(c *fiber.Ctx) error {
	station, err := h.stations.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, station, nil)
}
