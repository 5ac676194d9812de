package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/ordesk/ordesk/internal/pkg/constants"
	"github.com/ordesk/ordesk/internal/pkg/models"
	wspkg "github.com/ordesk/ordesk/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startWSServer runs the handler behind a middleware that injects a fixed
// identity, standing in for the session middleware.
func startWSServer(t *testing.T, userID string, registry *wspkg.Registry) *httptest.Server {
	handler := NewEchoWebSocketHandler(registry)

	e := echo.New()
	e.GET("/ws", handler.HandleWebSocket, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", userID)
			c.Set("role", "member")
			return next(c)
		}
	})

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *gorilla.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForCount(t *testing.T, registry *wspkg.Registry, want int) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if registry.Count() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, want, registry.Count())
}

func TestHandleWebSocket_RegistersAndUnregisters(t *testing.T) {
	registry := wspkg.NewRegistry()
	ts := startWSServer(t, "user-1", registry)

	conn := dialWS(t, ts)
	waitForCount(t, registry, 1)

	conn.Close()
	waitForCount(t, registry, 0)
}

func TestHandleWebSocket_PingPong(t *testing.T) {
	registry := wspkg.NewRegistry()
	ts := startWSServer(t, "user-1", registry)

	conn := dialWS(t, ts)

	require.NoError(t, conn.WriteJSON(models.WSMessage{Event: constants.EventPing}))

	var reply models.WSMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, constants.EventPong, reply.Event)
}

func TestHandleWebSocket_UnknownEvent(t *testing.T) {
	registry := wspkg.NewRegistry()
	ts := startWSServer(t, "user-1", registry)

	conn := dialWS(t, ts)

	require.NoError(t, conn.WriteJSON(models.WSMessage{Event: "subscribe"}))

	var reply models.WSMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, constants.EventError, reply.Event)
}

func TestHandleWebSocket_ReceivesNotify(t *testing.T) {
	registry := wspkg.NewRegistry()
	ts := startWSServer(t, "user-1", registry)

	conn := dialWS(t, ts)
	waitForCount(t, registry, 1)

	registry.Notify("user-1", constants.EventNotification, map[string]string{"title": "Order shipped"})

	var reply models.WSMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, constants.EventNotification, reply.Event)
	assert.Contains(t, string(reply.Data), "Order shipped")
}

func TestHandleWebSocket_ReconnectReplacesConnection(t *testing.T) {
	registry := wspkg.NewRegistry()
	ts := startWSServer(t, "user-1", registry)

	first := dialWS(t, ts)
	waitForCount(t, registry, 1)

	second := dialWS(t, ts)
	waitForCount(t, registry, 1)

	// Closing the replaced connection must not evict the newer one
	first.Close()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, registry.Count())

	registry.Notify("user-1", constants.EventNotification, map[string]string{"title": "still here"})

	var reply models.WSMessage
	require.NoError(t, second.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, second.ReadJSON(&reply))
	assert.Equal(t, constants.EventNotification, reply.Event)
}
