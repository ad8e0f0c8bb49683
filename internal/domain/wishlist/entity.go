// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"
)

// WishlistEntry marks one (user, item) pair. Uniqueness per pair is
// backed by a composite unique index; the service still checks first so
// a duplicate add reports success instead of a constraint error.
type WishlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_item" json:"user_id"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_item" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (WishlistEntry) TableName() string {
	return "wishlist_entries"
}
