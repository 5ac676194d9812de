package repository

import (
	"context"
	"fmt"

	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/services/accounts"
)

// CreateNotification appends a record to the durable notification log
func (r *AccountRepo) CreateNotification(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, body, link, "read", created_at)
		VALUES (:id, :user_id, :type, :title, :body, :link, :read, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// ListNotifications retrieves a user's notifications, most recent first
func (r *AccountRepo) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, body, link, "read", created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	notifications := []*models.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// MarkNotificationRead transitions a notification to read. The read flag is
// the only mutation the core performs; records are never deleted here.
func (r *AccountRepo) MarkNotificationRead(ctx context.Context, userID, id string) error {
	query := `
		UPDATE notifications
		SET "read" = true
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if rows == 0 {
		return accounts.ErrNotFound
	}

	return nil
}
