package accounts

import (
	"context"

	"github.com/ordesk/ordesk/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/ordesk/ordesk/services/accounts AccountUC

// AccountUC represents the accounts usecase interface
type AccountUC interface {
	// session authentication
	Login(ctx context.Context, username, password string) (*models.Session, *models.User, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error

	// account provisioning
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	// OTP lifecycle
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	VerifyResetCode(ctx context.Context, email, code string) (bool, error)
	CompleteReset(ctx context.Context, email, code, newPassword string) error

	// notification delivery
	PushToUser(ctx context.Context, event *models.UserEvent) error
	Broadcast(event *models.BroadcastEvent)
	ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
}
