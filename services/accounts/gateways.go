package accounts

import (
	"context"

	"github.com/ordesk/ordesk/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateways.go -package=mocks github.com/ordesk/ordesk/services/accounts AccountGW

// AccountGW represents outbound collaborators of the accounts core.
type AccountGW interface {
	// SendResetCode hands the code to the out-of-band notifier. Non-delivery
	// is non-fatal: the code stays valid either way.
	SendResetCode(ctx context.Context, email, code string) (bool, error)

	// PublishPasswordChanged announces a verifier change to other subsystems
	PublishPasswordChanged(event *models.PasswordChangedEvent) error
}
