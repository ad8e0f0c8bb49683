// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Item represents a catalog item. Read-only from the storefront's
// perspective; the catalog is maintained out of band.
type Item struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:100;index" json:"category"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Images []ItemImage `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
}

// ItemImage references an object in the image bucket
type ItemImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;index" json:"item_id"`
	ObjectID  string    `gorm:"not null;size:500" json:"object_id"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Price is one validity-windowed price row for an item. Multiple
// concurrent rows per item are allowed; the effective price at an
// instant is the highest-priority row whose window covers it.
type Price struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ItemID    uint       `gorm:"not null;index" json:"item_id"`
	Amount    int64      `gorm:"not null" json:"amount"` // Minor currency units
	ValidFrom time.Time  `gorm:"not null" json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"` // Open-ended when nil
	Priority  int        `gorm:"not null;default:0" json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName overrides
func (Item) TableName() string      { return "items" }
func (ItemImage) TableName() string { return "item_images" }
func (Price) TableName() string     { return "prices" }
