package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/ordesk/ordesk/internal/pkg/constants"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/models"
)

// initNotifyConsumers subscribes to the notification subjects
func (h *NatsHandler) initNotifyConsumers() error {
	userSub, err := h.natsClient.Subscribe(constants.SubjectNotifyUser, func(msg *nats.Msg) {
		if err := h.handleUserEvent(msg.Data); err != nil {
			logger.Error("Error handling user notification event", logger.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to user notification events: %w", err)
	}
	h.subs = append(h.subs, userSub)

	broadcastSub, err := h.natsClient.Subscribe(constants.SubjectNotifyBroadcast, func(msg *nats.Msg) {
		if err := h.handleBroadcastEvent(msg.Data); err != nil {
			logger.Error("Error handling broadcast event", logger.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to broadcast events: %w", err)
	}
	h.subs = append(h.subs, broadcastSub)

	return nil
}

// handleUserEvent persists the notification and pushes it to the live
// connection when one exists
func (h *NatsHandler) handleUserEvent(msg []byte) error {
	var event models.UserEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal user notification event: %w", err)
	}
	if event.UserID == "" {
		return fmt.Errorf("user notification event missing user_id")
	}

	return h.accountUC.PushToUser(context.Background(), &event)
}

// handleBroadcastEvent fans an announcement out to every live connection
func (h *NatsHandler) handleBroadcastEvent(msg []byte) error {
	var event models.BroadcastEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal broadcast event: %w", err)
	}

	h.accountUC.Broadcast(&event)
	return nil
}
