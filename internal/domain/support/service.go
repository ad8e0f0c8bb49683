// internal/domain/support/service.go
package support

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
	"github.com/your-org/storefront-api/internal/pkg/email"
	"gorm.io/gorm"
)

// Notifier forwards a stored contact message to the store inbox
type Notifier interface {
	SendContactNotification(ctx context.Context, data *email.ContactNotification) error
}

// Service handles contact submissions and FAQ content
type Service struct {
	db       *gorm.DB
	config   *config.Config
	notifier Notifier
	log      *logrus.Logger
}

// NewService creates a new support service
func NewService(db *gorm.DB, cfg *config.Config, notifier Notifier, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		db:       db,
		config:   cfg,
		notifier: notifier,
		log:      log,
	}
}

// ContactRequest represents a contact-form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// SubmitContact stores the message and notifies the store inbox.
// Notification failure is logged, not surfaced; the submission stands.
func (s *Service) SubmitContact(ctx context.Context, req *ContactRequest) (*ContactMessage, error) {
	msg := ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to store contact message", err)
	}

	if s.notifier != nil {
		notification := &email.ContactNotification{
			Name:    msg.Name,
			Email:   msg.Email,
			Subject: msg.Subject,
			Body:    msg.Body,
		}
		if err := s.notifier.SendContactNotification(ctx, notification); err != nil {
			s.log.WithError(err).Warn("contact notification delivery failed")
		}
	}

	return &msg, nil
}

// ListFAQ returns the active FAQ entries in display order
func (s *Service) ListFAQ(ctx context.Context) ([]FAQEntry, error) {
	var entries []FAQEntry
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load FAQ entries", err)
	}
	return entries, nil
}
