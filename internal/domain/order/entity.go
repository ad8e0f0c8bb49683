// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is an immutable snapshot of a cart at checkout time
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderNumber string         `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	CartID      uint           `gorm:"not null" json:"cart_id"`
	Status      OrderStatus    `gorm:"not null;size:20;default:'pending'" json:"status"`
	Subtotal    int64          `gorm:"not null" json:"subtotal"`
	Total       int64          `gorm:"not null" json:"total"`
	Currency    string         `gorm:"size:3" json:"currency"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem carries the item name and price as they were at checkout,
// decoupled from later catalog changes.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ItemID    uint      `gorm:"not null;index" json:"item_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	LineTotal int64     `gorm:"not null" json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
