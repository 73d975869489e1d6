package handler

import (
	"project-intake-be/internal/pkg/logger"
	"project-intake-be/internal/pkg/serverutils"
	internalWS "project-intake-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// DashboardHandler exposes the live analytics feed and the log reader.
type DashboardHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewDashboardHandler(hub *internalWS.Hub, log logger.ILogger) *DashboardHandler {
	return &DashboardHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs upgrades the connection and subscribes it to one session's
// analytics, or all sessions when no session_id is given.
func (h *DashboardHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := c.Query("session_id", internalWS.WatchAll)

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("DashboardHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("DashboardHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetLogs pages through the structured application log.
func (h *DashboardHandler) GetLogs(c *fiber.Ctx) error {
	level := c.Query("level")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	logs, err := h.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("System logs", logs))
}

// GetLogById returns a single log entry.
func (h *DashboardHandler) GetLogById(c *fiber.Ctx) error {
	entry, err := h.logger.GetLogById(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Log not found")
	}

	return c.JSON(serverutils.SuccessResponse("Log detail", entry))
}

// RegisterRoutes registers the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	dash := router.Group("/dashboard/v1")
	dash.Get("/ws", h.ServeWs)

	logs := dash.Group("/logs")
	logs.Use(serverutils.JwtMiddleware)
	logs.Get("/", h.GetLogs)
	logs.Get("/:id", h.GetLogById)
}
