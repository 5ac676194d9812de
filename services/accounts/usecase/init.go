package usecase

import (
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/internal/pkg/websocket"
	"github.com/ordesk/ordesk/services/accounts"
)

type AccountUC struct {
	userRepo         accounts.UserRepo
	otpRepo          accounts.OTPRepo
	sessionRepo      accounts.SessionRepo
	notificationRepo accounts.NotificationRepo
	accountGW        accounts.AccountGW
	registry         *websocket.Registry
	cfg              *models.Config
}

// NewAccountUC creates a new account usecase instance
func NewAccountUC(
	userRepo accounts.UserRepo,
	otpRepo accounts.OTPRepo,
	sessionRepo accounts.SessionRepo,
	notificationRepo accounts.NotificationRepo,
	accountGW accounts.AccountGW,
	registry *websocket.Registry,
	cfg *models.Config,
) *AccountUC {
	return &AccountUC{
		userRepo:         userRepo,
		otpRepo:          otpRepo,
		sessionRepo:      sessionRepo,
		notificationRepo: notificationRepo,
		accountGW:        accountGW,
		registry:         registry,
		cfg:              cfg,
	}
}
