// internal/domain/cart/service.go
package cart

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

// Service handles cart business logic
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog *catalog.Service
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: catalog.NewService(db, redisClient, cfg),
	}
}

// AddResult signals which branch an add took, for caller feedback
type AddResult struct {
	CartID  uint   `json:"cart_id"`
	Updated bool   `json:"updated"` // true when an existing line's quantity grew
	Message string `json:"message"`
}

// CartLine is one cart line joined with its item name
type CartLine struct {
	ItemID      uint      `json:"item_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	PriceAtTime int64     `json:"price_at_time"`
	LineTotal   int64     `json:"line_total"`
	AddedAt     time.Time `json:"added_at"`
}

// CartResponse represents the caller's active cart
type CartResponse struct {
	CartID        uint       `json:"cart_id"`
	Lines         []CartLine `json:"lines"`
	TotalQuantity int        `json:"total_quantity"`
	Subtotal      int64      `json:"subtotal"`
	ExpiresAt     time.Time  `json:"expires_at,omitempty"`
}

// GetOrCreateActiveCart returns the user's active cart, creating one
// when none exists. The partial unique index on (user_id, status=active)
// closes the create race: a losing insert falls back to the winner's row.
func (s *Service) GetOrCreateActiveCart(ctx context.Context, userID uint) (*Cart, error) {
	cart, err := s.findActiveCart(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := Cart{
		UserID:    userID,
		Status:    CartStatusActive,
		ExpiresAt: now.Add(cartLifetime),
	}

	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		// Likely the unique index: a concurrent request won the insert
		if existing, lookupErr := s.findActiveCart(ctx, userID); lookupErr == nil {
			return existing, nil
		}
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to create cart", err)
	}

	return &created, nil
}

// AddItem adds an item to the user's active cart. A repeat add grows
// the existing line's quantity; the line's price_at_time keeps the
// snapshot taken when it was first inserted.
func (s *Service) AddItem(ctx context.Context, userID, itemID uint, quantity int) (*AddResult, error) {
	if quantity < 1 {
		return nil, apperrors.New(apperrors.KindValidation, "quantity must be a positive integer")
	}

	cart, err := s.GetOrCreateActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var existing CartItem
	err = s.db.WithContext(ctx).
		Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
		First(&existing).Error

	if err == nil {
		err = s.db.WithContext(ctx).
			Model(&CartItem{}).
			Where("id = ?", existing.ID).
			Update("quantity", existing.Quantity+quantity).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to update cart item", err)
		}
		return &AddResult{CartID: cart.ID, Updated: true, Message: "Cart item quantity updated"}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to look up cart item", err)
	}

	price, err := s.catalog.ResolveEffectivePrice(ctx, itemID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	line := CartItem{
		CartID:      cart.ID,
		ItemID:      itemID,
		Quantity:    quantity,
		PriceAtTime: price,
	}
	if err := s.db.WithContext(ctx).Create(&line).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to insert cart item", err)
	}

	return &AddResult{CartID: cart.ID, Updated: false, Message: "Added to cart"}, nil
}

// RemoveItem deletes the matching line from the user's active cart.
// Removing a line that is not there is a zero-row delete, not an error.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uint) error {
	cart, err := s.findActiveCart(ctx, userID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
		Delete(&CartItem{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.KindDataStore, "failed to remove cart item", result.Error)
	}

	return nil
}

// GetCart returns the user's active cart joined with item names.
// A user without an active cart gets an empty cart, not an error.
func (s *Service) GetCart(ctx context.Context, userID uint) (*CartResponse, error) {
	cart, err := s.findActiveCart(ctx, userID)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return &CartResponse{Lines: []CartLine{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []CartItem
	err = s.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load cart items", err)
	}

	names, err := s.itemNames(ctx, items)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{
		CartID:    cart.ID,
		Lines:     make([]CartLine, len(items)),
		ExpiresAt: cart.ExpiresAt,
	}
	for i, item := range items {
		resp.Lines[i] = CartLine{
			ItemID:      item.ItemID,
			Name:        names[item.ItemID],
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
			LineTotal:   item.PriceAtTime * int64(item.Quantity),
			AddedAt:     item.CreatedAt,
		}
		resp.TotalQuantity += item.Quantity
		resp.Subtotal += resp.Lines[i].LineTotal
	}

	return resp, nil
}

// ClearCart removes every line from the user's active cart
func (s *Service) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.findActiveCart(ctx, userID)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Delete(&CartItem{}).Error
	return apperrors.Wrap(apperrors.KindDataStore, "failed to clear cart", err)
}

// ItemCount returns the summed quantity across the active cart's lines
func (s *Service) ItemCount(ctx context.Context, userID uint) (int, error) {
	resp, err := s.GetCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return resp.TotalQuantity, nil
}

func (s *Service) findActiveCart(ctx context.Context, userID uint) (*Cart, error) {
	var cart Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, CartStatusActive).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.KindNotFound, "no active cart found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to look up active cart", err)
	}

	return &cart, nil
}

func (s *Service) itemNames(ctx context.Context, items []CartItem) (map[uint]string, error) {
	names := make(map[uint]string, len(items))
	if len(items) == 0 {
		return names, nil
	}

	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.ItemID
	}

	var rows []catalog.Item
	err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load item details", err)
	}

	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
