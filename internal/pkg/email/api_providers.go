// internal/pkg/email/api_providers.go
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const resendEndpoint = "https://api.resend.com/emails"

// sendResend delivers a message through the Resend HTTP API
func (s *Service) sendResend(ctx context.Context, msg *Message) error {
	cfg := s.config.Email

	if cfg.APIKey == "" {
		return fmt.Errorf("resend API key not configured")
	}

	payload := map[string]interface{}{
		"from":    fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail),
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTMLContent,
	}
	if msg.TextContent != "" {
		payload["text"] = msg.TextContent
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
