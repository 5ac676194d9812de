package websocket

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/ordesk/ordesk/internal/pkg/constants"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/models"
	wspkg "github.com/ordesk/ordesk/internal/pkg/websocket"
)

// EchoWebSocketHandler upgrades authenticated HTTP requests into live
// notification connections and keeps the registry in sync with their
// lifecycle.
type EchoWebSocketHandler struct {
	registry *wspkg.Registry
	upgrader gorilla.Upgrader
}

// NewEchoWebSocketHandler creates a new Echo-based websocket handler
func NewEchoWebSocketHandler(registry *wspkg.Registry) *EchoWebSocketHandler {
	return &EchoWebSocketHandler{
		registry: registry,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket authenticates the session at handshake time, upgrades the
// connection and runs the read loop. A newer connection for the same user
// replaces this one in the registry; the replaced connection keeps draining
// until its peer goes away.
func (h *EchoWebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	role, _ := c.Get("role").(string)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed",
			logger.String("user_id", userID),
			logger.Err(err))
		return nil
	}
	defer conn.Close()

	client := wspkg.NewClient(userID, role, conn)
	h.registry.Register(client)
	defer h.registry.Unregister(userID, conn)

	logger.Info("WebSocket client connected",
		logger.String("user_id", userID),
		logger.String("role", role))

	h.readLoop(client, conn)

	logger.Info("WebSocket client disconnected",
		logger.String("user_id", userID))
	return nil
}

func (h *EchoWebSocketHandler) readLoop(client *wspkg.Client, conn *gorilla.Conn) {
	for {
		var msg models.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if gorilla.IsUnexpectedCloseError(err, gorilla.CloseGoingAway, gorilla.CloseNormalClosure) {
				logger.Warn("WebSocket read error",
					logger.String("user_id", client.UserID),
					logger.Err(err))
			}
			return
		}

		if err := h.handleMessage(client, &msg); err != nil {
			logger.Warn("Error handling websocket message",
				logger.String("user_id", client.UserID),
				logger.String("event", msg.Event),
				logger.Err(err))
		}
	}
}

// handleMessage dispatches a single inbound client message. The notification
// channel is server-to-client; clients only speak keepalives.
func (h *EchoWebSocketHandler) handleMessage(client *wspkg.Client, msg *models.WSMessage) error {
	switch msg.Event {
	case constants.EventPing:
		return client.Send(constants.EventPong, nil)
	case constants.EventPong:
		return nil
	default:
		return client.SendError(constants.ErrorInvalidFormat, "Unknown event: "+msg.Event)
	}
}
