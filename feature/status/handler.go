package status

import (
	"raid-status-bot/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for bot status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	app.Get("/status", h.HandleStatus)
	app.Get("/messages", h.HandleMessages)
	app.Get("/names", h.HandleNames)
	app.Post("/names/refresh", h.HandleRefreshNames)
}

// HandleHealth reports that the process is alive.
// @Summary Health Check
// @Description Liveness probe. Does not touch Telegram or the database.
// @Tags status
// @Produce json
// @Success 200 {object} map[string]interface{} "Alive"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "ok",
		"uptime_seconds": int64(h.service.Uptime().Seconds()),
	})
}

// HandleStatus returns the report of the latest reconciliation cycle.
// @Summary Last Cycle Report
// @Description Per channel outcome of the most recent reconciliation cycle.
// @Tags status
// @Produce json
// @Success 200 {object} scheduler.Report "Cycle Report"
// @Failure 404 {object} map[string]string "No cycle finished yet"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	report, ok := h.service.LastReport()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no cycle finished yet"})
	}
	return c.JSON(report)
}

// HandleMessages lists the tracked status messages.
// @Summary Tracked Messages
// @Description Status message id per channel key, as persisted after each cycle.
// @Tags status
// @Produce json
// @Success 200 {array} TrackedMessage "Tracked Messages"
// @Router /messages [get]
func (h *Handler) HandleMessages(c *fiber.Ctx) error {
	return c.JSON(h.service.Messages())
}

// HandleNames describes the loaded name data.
// @Summary Name Data Info
// @Tags names
// @Produce json
// @Success 200 {object} NamesInfo "Name Data"
// @Router /names [get]
func (h *Handler) HandleNames(c *fiber.Ctx) error {
	return c.JSON(h.service.NamesInfo())
}

// HandleRefreshNames reloads name data immediately.
// @Summary Refresh Name Data
// @Description Downloads pokemon, move and raid level names now instead of waiting for the refresh interval.
// @Tags names
// @Produce json
// @Success 200 {object} NamesInfo "Refreshed"
// @Failure 502 {object} map[string]string "Download failed, previous names kept"
// @Router /names/refresh [post]
func (h *Handler) HandleRefreshNames(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Manual name data refresh requested")

	info, err := h.service.RefreshNames(c.Context())
	if err != nil {
		l.Warn("Manual name data refresh failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(info)
}
