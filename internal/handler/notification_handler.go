package handler

import (
	"notestack-be/internal/pkg/apperror"
	"notestack-be/internal/pkg/logger"
	"notestack-be/internal/pkg/serverutils"
	internalWS "notestack-be/internal/websocket"
	"notestack-be/pkg/credential"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	issuer *credential.TokenIssuer
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewNotificationHandler(issuer *credential.TokenIssuer, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		issuer: issuer,
		hub:    hub,
		logger: log,
	}
}

// Authenticate resolves the caller before the upgrade. Browsers cannot set
// headers on a WebSocket handshake, so the token query parameter comes first.
func (h *NotificationHandler) Authenticate(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr, _ = serverutils.BearerToken(c.Get(fiber.HeaderAuthorization))
	}
	if tokenStr == "" {
		return apperror.Unauthenticated("Please authenticate using a valid token")
	}

	userID, err := h.issuer.Verify(tokenStr)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return apperror.Unauthenticated("Please authenticate using a valid token")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	c.Locals("user_id", userID)
	return c.Next()
}

// ServeWs runs one session for the authenticated user.
func (h *NotificationHandler) ServeWs(c *websocket.Conn) {
	userID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		_ = c.Close()
		return
	}

	h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID.String()})
	internalWS.ServeWs(h.hub, c, userID)
	h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID.String()})
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.Authenticate, websocket.New(h.ServeWs))
}
