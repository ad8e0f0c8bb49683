// internal/domain/cart/entity.go
package cart

import (
	"time"

	"gorm.io/gorm"
)

// CartStatus represents the cart lifecycle state
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted"
	CartStatusAbandoned CartStatus = "abandoned"
)

// cartLifetime is written into expires_at at creation. The timestamp is
// informational; nothing in the service enforces it.
const cartLifetime = 7 * 24 * time.Hour

// Cart represents one user's cart. A user has at most one cart with
// status "active"; a partial unique index enforces this.
type Cart struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Status    CartStatus     `gorm:"not null;size:20;default:'active'" json:"status"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// CartItem is one line in a cart. PriceAtTime is the effective price
// captured when the line was first added and is never rewritten.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CartID      uint      `gorm:"not null;index:idx_cart_items_cart_item" json:"cart_id"`
	ItemID      uint      `gorm:"not null;index:idx_cart_items_cart_item" json:"item_id"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	PriceAtTime int64     `gorm:"not null" json:"price_at_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides
func (Cart) TableName() string     { return "carts" }
func (CartItem) TableName() string { return "cart_items" }
