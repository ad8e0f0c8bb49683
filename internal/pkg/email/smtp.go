// internal/pkg/email/smtp.go
package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// sendSMTP delivers a message through a plain SMTP relay
func (s *Service) sendSMTP(msg *Message) error {
	cfg := s.config.Email

	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP host not configured")
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	from := fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)

	var body strings.Builder
	body.WriteString(fmt.Sprintf("From: %s\r\n", from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTMLContent)

	if err := smtp.SendMail(addr, auth, cfg.FromEmail, msg.To, []byte(body.String())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
