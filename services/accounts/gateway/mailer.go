package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ordesk/ordesk/internal/pkg/logger"
)

type resetMailRequest struct {
	To       string `json:"to"`
	Template string `json:"template"`
	Code     string `json:"code"`
}

// SendResetCode posts the reset code to the mailer service. It reports
// whether the mailer accepted the message; the caller treats non-delivery
// as non-fatal.
func (g *AccountGW) SendResetCode(ctx context.Context, email, code string) (bool, error) {
	payload, err := json.Marshal(resetMailRequest{
		To:       email,
		Template: "password_reset",
		Code:     code,
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal mail request: %w", err)
	}

	url := g.mailerURL + "/v1/mail/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("X-API-Key", g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("mailer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Mailer rejected reset code delivery",
			logger.String("email", email),
			logger.Int("status", resp.StatusCode))
		return false, nil
	}

	return true, nil
}
