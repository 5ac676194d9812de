package accounts

import (
	"context"

	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/ordesk/ordesk/services/accounts UserRepo,OTPRepo,SessionRepo,NotificationRepo

// UserRepo represents the credential record persistence interface.
// Password verifiers are written only through CreateUser and
// UpdatePasswordVerifier; nothing else in the system mutates them.
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordVerifier(ctx context.Context, userID uuid.UUID, verifier string) error
}

// OTPRepo represents the one-time-code persistence interface.
type OTPRepo interface {
	// CreateOTP marks every unused code for the email as used and inserts the
	// new record in a single transaction
	CreateOTP(ctx context.Context, otp *models.OTP) error

	// GetActiveOTP returns the record matching email and code that is unused
	// and unexpired, or ErrNotFound
	GetActiveOTP(ctx context.Context, email, code string) (*models.OTP, error)

	// ConsumeOTPAndSetVerifier flips the matching active code to used and
	// updates the user's password verifier in one transaction. It reports
	// false, without touching the verifier, when no active code matches.
	ConsumeOTPAndSetVerifier(ctx context.Context, email, code string, userID uuid.UUID, verifier string) (bool, error)
}

// SessionRepo is the pluggable session store: Redis in production, in-memory
// in tests. Get refreshes the sliding expiry.
type SessionRepo interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// NotificationRepo represents the durable notification log.
type NotificationRepo interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
}
