// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles checkout and order history
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cart.NewService(db, redisClient, cfg),
	}
}

// Checkout snapshots the user's active cart into an order and marks the
// cart converted, all inside one transaction. An empty or missing cart
// cannot be checked out.
func (s *Service) Checkout(ctx context.Context, userID uint) (*Order, error) {
	cartResp, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cartResp.CartID == 0 || len(cartResp.Lines) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "cart is empty")
	}

	newOrder := Order{
		OrderNumber: generateOrderNumber(),
		UserID:      userID,
		CartID:      cartResp.CartID,
		Status:      OrderStatusPending,
		Subtotal:    cartResp.Subtotal,
		Total:       cartResp.Subtotal,
		Currency:    s.config.App.Currency,
	}
	for _, line := range cartResp.Lines {
		newOrder.Items = append(newOrder.Items, OrderItem{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.PriceAtTime,
			LineTotal: line.LineTotal,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newOrder).Error; err != nil {
			return err
		}
		return s.convertCart(tx, cartResp.CartID)
	})
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindUnknown {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.KindDataStore, "checkout failed", err)
	}

	return &newOrder, nil
}

// convertCart marks the cart converted. The guard on status keeps a
// concurrent checkout from converting the same cart twice; losing that
// race is a caller-visible conflict, not a storage failure.
func (s *Service) convertCart(tx *gorm.DB, cartID uint) error {
	result := tx.Model(&cart.Cart{}).
		Where("id = ? AND status = ?", cartID, cart.CartStatusActive).
		Update("status", cart.CartStatusConverted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.Newf(apperrors.KindValidation, "cart %d is no longer active", cartID)
	}
	return nil
}

// List returns the user's orders, newest first, items included
func (s *Service) List(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to list orders", err)
	}
	return orders, nil
}

// Get returns one of the user's orders. Another user's order is not
// found rather than forbidden; order ids are not treated as public.
func (s *Service) Get(ctx context.Context, userID, orderID uint) (*Order, error) {
	var ord Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&ord).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "order %d not found", orderID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load order", err)
	}

	return &ord, nil
}

func generateOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("ORD-%s", id[:10])
}
