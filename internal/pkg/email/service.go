// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/your-org/storefront-api/internal/config"
)

// Service sends transactional email through the configured provider
type Service struct {
	config *config.Config
	client *http.Client
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send sends a message using the configured provider. The "none"
// provider drops mail silently so development setups need no account.
func (s *Service) Send(ctx context.Context, msg *Message) error {
	switch s.config.Email.Provider {
	case "smtp":
		return s.sendSMTP(msg)
	case "resend":
		return s.sendResend(ctx, msg)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
}

var contactTemplate = template.Must(template.New("contact").Parse(`
<h2>New contact message</h2>
<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p>{{.Body}}</p>
`))

// ContactNotification is the data rendered into the store inbox mail
type ContactNotification struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// SendContactNotification forwards a contact-form submission to the
// store's support address.
func (s *Service) SendContactNotification(ctx context.Context, data *ContactNotification) error {
	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render contact notification: %w", err)
	}

	return s.Send(ctx, &Message{
		To:          []string{s.config.App.StoreEmail},
		Subject:     fmt.Sprintf("[%s] Contact: %s", s.config.App.StoreName, data.Subject),
		HTMLContent: buf.String(),
	})
}
