package gateway

import (
	"net/http"
	"time"

	"github.com/ordesk/ordesk/internal/pkg/models"
	natspkg "github.com/ordesk/ordesk/internal/pkg/nats"
	"github.com/ordesk/ordesk/services/accounts"
)

// AccountGW handles outbound operations of the accounts service
type AccountGW struct {
	natsClient *natspkg.Client
	httpClient *http.Client
	mailerURL  string
	apiKey     string
}

// NewAccountGW creates a new gateway instance with NATS and mailer clients
func NewAccountGW(natsClient *natspkg.Client, cfg *models.Config) accounts.AccountGW {
	timeout := time.Duration(cfg.Mailer.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AccountGW{
		natsClient: natsClient,
		httpClient: &http.Client{Timeout: timeout},
		mailerURL:  cfg.Mailer.URL,
		apiKey:     cfg.Mailer.APIKey,
	}
}
