package http

import (
	"context"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/config"
	"github.com/fieldsync-agent/internal/delivery/http/handler"
	"github.com/fieldsync-agent/internal/delivery/http/middleware"
)

// Server is the agent's local HTTP API, consumed by the operator UI on
// the same device.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	stationHandler *handler.StationHandler
	planHandler    *handler.PlanHandler
	tripHandler    *handler.TripHandler
	visitHandler   *handler.VisitHandler
	syncHandler    *handler.SyncHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	stationHandler *handler.StationHandler,
	planHandler *handler.PlanHandler,
	tripHandler *handler.TripHandler,
	visitHandler *handler.VisitHandler,
	syncHandler *handler.SyncHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "FieldSync Agent",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		// Inspection payloads carry 2 to 4 base64 photos.
		BodyLimit:    32 * 1024 * 1024,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		stationHandler: stationHandler,
		planHandler:    planHandler,
		tripHandler:    tripHandler,
		visitHandler:   visitHandler,
		syncHandler:    syncHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Reference data (served from the local cache)
	api.Get("/stations", s.stationHandler.List)
	api.Get("/stations/:id", s.stationHandler.Get)
	api.Get("/plans/today", s.planHandler.Today)
	api.Get("/plans/active", s.planHandler.Active)
	api.Get("/plans/:id", s.planHandler.Get)

	// Trip lifecycle
	api.Post("/trips/start", s.tripHandler.Start)
	api.Post("/trips/complete", s.tripHandler.Complete)
	api.Get("/trips/current", s.tripHandler.Current)

	// Capture
	api.Post("/visits", s.visitHandler.Capture)

	// Sync engine
	api.Post("/sync", s.syncHandler.Trigger)
	api.Get("/sync/status", s.syncHandler.Status)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
