package nats

import (
	"fmt"

	"github.com/nats-io/nats.go"
	natspkg "github.com/ordesk/ordesk/internal/pkg/nats"
	"github.com/ordesk/ordesk/services/accounts"
)

// NatsHandler consumes inbound notification events from the message bus
// and feeds them into the delivery pipeline
type NatsHandler struct {
	accountUC  accounts.AccountUC
	natsClient *natspkg.Client
	subs       []*nats.Subscription
}

// NewNatsHandler creates a new NATS handler
func NewNatsHandler(accountUC accounts.AccountUC, natsClient *natspkg.Client) *NatsHandler {
	return &NatsHandler{
		accountUC:  accountUC,
		natsClient: natsClient,
	}
}

// InitConsumers sets up all NATS subscriptions
func (h *NatsHandler) InitConsumers() error {
	if err := h.initNotifyConsumers(); err != nil {
		return fmt.Errorf("failed to initialize notify consumers: %w", err)
	}
	return nil
}

// Close unsubscribes all consumers
func (h *NatsHandler) Close() {
	for _, sub := range h.subs {
		_ = sub.Unsubscribe()
	}
	h.subs = nil
}
