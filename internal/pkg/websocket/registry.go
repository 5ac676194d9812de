// Package websocket holds the process-local live connection registry. The
// registry maps a user ID to at most one open push channel: registering a new
// connection for a user replaces any previous one, and an unregister only
// takes effect while its connection still owns the entry, so a stale close
// racing a reconnect cannot drop the newer channel.
package websocket

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ordesk/ordesk/internal/pkg/constants"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/models"
)

const (
	shardCount = 16
	writeWait  = 5 * time.Second
)

// Client wraps a single authenticated push channel. Writes on the underlying
// connection are serialized through the client's mutex and bounded by a write
// deadline so a stalled peer cannot block the notification path.
type Client struct {
	UserID string
	Role   string

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a client for an authenticated connection
func NewClient(userID, role string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Role:   role,
		conn:   conn,
	}
}

// Send writes an event envelope to the client's connection
func (c *Client) Send(event string, data interface{}) error {
	if c.conn == nil {
		return nil // nil connections are tolerated for tests
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}

	msg := models.WSMessage{
		Event: event,
		Data:  rawData,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// SendError writes an error envelope to the client's connection
func (c *Client) SendError(code, message string) error {
	return c.Send(constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

type shard struct {
	mu      sync.Mutex
	clients map[string]*Client
}

// Registry is a sharded map of user ID to live client. Operations on
// different users never contend on the same lock; operations on the same user
// are serialized by its shard, which preserves last-registration-wins and
// makes push-after-unregister a no-op.
type Registry struct {
	shards [shardCount]*shard
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &shard{clients: make(map[string]*Client)}
	}
	return r
}

func (r *Registry) shardFor(userID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return r.shards[h.Sum32()%shardCount]
}

// Register stores the client, replacing any previous entry for its user
func (r *Registry) Register(client *Client) {
	s := r.shardFor(client.UserID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client.UserID] = client
}

// Unregister removes the user's entry only if it still belongs to conn
func (r *Registry) Unregister(userID string, conn *websocket.Conn) {
	s := r.shardFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.clients[userID]
	if !ok || existing.conn != conn {
		return
	}
	delete(s.clients, userID)
}

// Get returns the live client for a user, if any
func (r *Registry) Get(userID string) (*Client, bool) {
	s := r.shardFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	client, ok := s.clients[userID]
	return client, ok
}

// Count returns the number of registered clients
func (r *Registry) Count() int {
	total := 0
	for _, s := range r.shards {
		s.mu.Lock()
		total += len(s.clients)
		s.mu.Unlock()
	}
	return total
}

// Notify attempts a live push to one user. A missing or broken channel is not
// an error: the caller has already persisted the durable record and the user
// will see it on next page load.
func (r *Registry) Notify(userID, event string, data interface{}) {
	client, ok := r.Get(userID)
	if !ok {
		return
	}

	if err := client.Send(event, data); err != nil {
		logger.Warn("Error sending message to client",
			logger.String("user_id", userID),
			logger.String("event", event),
			logger.Err(err))
	}
}

// Broadcast sends an event to every registered client
func (r *Registry) Broadcast(event string, data interface{}) {
	for _, s := range r.shards {
		s.mu.Lock()
		clients := make([]*Client, 0, len(s.clients))
		for _, c := range s.clients {
			clients = append(clients, c)
		}
		s.mu.Unlock()

		for _, c := range clients {
			if err := c.Send(event, data); err != nil {
				logger.Warn("Error broadcasting to client",
					logger.String("user_id", c.UserID),
					logger.String("event", event),
					logger.Err(err))
			}
		}
	}
}
