package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/ordesk/ordesk/internal/pkg/constants"
	"github.com/ordesk/ordesk/internal/pkg/models"
)

// PublishPasswordChanged announces a verifier change on the message bus
func (g *AccountGW) PublishPasswordChanged(event *models.PasswordChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal password changed event: %w", err)
	}
	return g.natsClient.Publish(constants.SubjectPasswordChanged, data)
}
