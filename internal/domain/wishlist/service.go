// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/catalog"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles wishlist business logic
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog *catalog.Service
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: catalog.NewService(db, redisClient, cfg),
	}
}

// ToggleResult reports the outcome of an add
type ToggleResult struct {
	Added   bool   `json:"added"` // false when the pair was already present
	Message string `json:"message"`
}

// EntryResponse is one wishlist entry joined with item details
type EntryResponse struct {
	ItemID       uint      `json:"item_id"`
	Name         string    `json:"name"`
	CurrentPrice int64     `json:"current_price"`
	AddedAt      time.Time `json:"added_at"`
}

// Add puts an item on the user's wishlist. Adding a pair that is
// already present is a no-op reporting success.
func (s *Service) Add(ctx context.Context, userID, itemID uint) (*ToggleResult, error) {
	var existing WishlistEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&existing).Error

	if err == nil {
		return &ToggleResult{Added: false, Message: "Already in wishlist"}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to check wishlist", err)
	}

	entry := WishlistEntry{UserID: userID, ItemID: itemID}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to add to wishlist", err)
	}

	return &ToggleResult{Added: true, Message: "Added to wishlist"}, nil
}

// Remove deletes the pair. A zero-row delete is success, not an error.
func (s *Service) Remove(ctx context.Context, userID, itemID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&WishlistEntry{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.KindDataStore, "failed to remove from wishlist", result.Error)
	}
	return nil
}

// List returns the user's wishlist, newest first, joined with item
// names and current effective prices.
func (s *Service) List(ctx context.Context, userID uint) ([]EntryResponse, error) {
	var entries []WishlistEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load wishlist", err)
	}

	itemIDs := make([]uint, len(entries))
	for i, entry := range entries {
		itemIDs[i] = entry.ItemID
	}

	var items []catalog.Item
	if len(itemIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load item details", err)
		}
	}
	names := make(map[uint]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}

	prices, err := s.catalog.EffectivePrices(ctx, itemIDs, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = EntryResponse{
			ItemID:       entry.ItemID,
			Name:         names[entry.ItemID],
			CurrentPrice: prices[entry.ItemID],
			AddedAt:      entry.CreatedAt,
		}
	}

	return responses, nil
}

// Count returns the number of entries on the user's wishlist
func (s *Service) Count(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&WishlistEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindDataStore, "failed to count wishlist", err)
	}
	return count, nil
}

// Contains reports whether the pair is on the wishlist
func (s *Service) Contains(ctx context.Context, userID, itemID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&WishlistEntry{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindDataStore, "failed to check wishlist", err)
	}
	return count > 0, nil
}
