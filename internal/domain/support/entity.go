// internal/domain/support/entity.go
package support

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage is one contact-form submission
type ContactMessage struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Email     string         `gorm:"not null;size:255" json:"email"`
	Subject   string         `gorm:"size:255" json:"subject"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FAQEntry is one question/answer pair shown on the FAQ page
type FAQEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Question  string         `gorm:"not null;size:500" json:"question"`
	Answer    string         `gorm:"type:text;not null" json:"answer"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"not null" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (ContactMessage) TableName() string { return "contact_messages" }
func (FAQEntry) TableName() string       { return "faq_entries" }
