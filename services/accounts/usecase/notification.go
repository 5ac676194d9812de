package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/constants"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/services/accounts"
)

// PushToUser persists the notification and then attempts live delivery.
// Persistence is the durability guarantee; the live push is best-effort and
// its failure never fails the call.
func (u *AccountUC) PushToUser(ctx context.Context, event *models.UserEvent) error {
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", event.UserID, err)
	}

	id := event.ID
	if id == "" {
		id = uuid.New().String()
	}
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid notification id %q: %w", id, err)
	}

	notification := &models.Notification{
		ID:        notificationID,
		UserID:    userID,
		Type:      event.Type,
		Title:     event.Title,
		Body:      event.Body,
		Link:      event.Link,
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := u.notificationRepo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	u.registry.Notify(event.UserID, constants.EventNotification, notification)
	return nil
}

// Broadcast pushes an announcement to every live connection. Broadcasts are
// not persisted; offline users simply miss them.
func (u *AccountUC) Broadcast(event *models.BroadcastEvent) {
	logger.Info("Broadcasting announcement",
		logger.String("type", event.Type),
		logger.Int("connections", u.registry.Count()))
	u.registry.Broadcast(constants.EventBroadcast, event)
}

// ListNotifications returns the user's stored notifications, newest first
func (u *AccountUC) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, accounts.ErrUnauthenticated
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	notifications, err := u.notificationRepo.ListNotifications(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flags a stored notification as read. The notification
// must belong to the requesting user.
func (u *AccountUC) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return accounts.ErrUnauthenticated
	}
	if _, err := uuid.Parse(notificationID); err != nil {
		return accounts.ErrNotFound
	}

	return u.notificationRepo.MarkNotificationRead(ctx, userID, notificationID)
}
