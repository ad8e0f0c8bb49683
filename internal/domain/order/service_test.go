package order

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/catalog"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *cart.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Item{}, &catalog.Price{},
		&cart.Cart{}, &cart.CartItem{},
		&Order{}, &OrderItem{},
	))

	cfg := &config.Config{}
	cfg.App.Currency = "PHP"
	cfg.Storage = config.StorageConfig{Provider: "local", Bucket: "images", Placeholder: "/placeholder.jpg"}

	return NewService(db, nil, cfg), cart.NewService(db, nil, cfg), db
}

func seedPricedItem(t *testing.T, db *gorm.DB, name string, amount int64) uint {
	t.Helper()
	item := catalog.Item{Name: name, IsActive: true}
	require.NoError(t, db.Create(&item).Error)
	require.NoError(t, db.Create(&catalog.Price{
		ItemID:    item.ID,
		Amount:    amount,
		ValidFrom: time.Now().UTC().Add(-time.Hour),
	}).Error)
	return item.ID
}

func TestCheckoutSnapshotsCart(t *testing.T) {
	svc, carts, db := newTestService(t)
	ctx := context.Background()

	shirt := seedPricedItem(t, db, "Shirt", 1000)
	jacket := seedPricedItem(t, db, "Jacket", 2500)

	_, err := carts.AddItem(ctx, 1, shirt, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, 1, jacket, 1)
	require.NoError(t, err)

	ord, err := svc.Checkout(ctx, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ord.OrderNumber, "ORD-"))
	assert.Equal(t, OrderStatusPending, ord.Status)
	assert.Equal(t, int64(4500), ord.Subtotal)
	assert.Equal(t, "PHP", ord.Currency)
	require.Len(t, ord.Items, 2)
	assert.Equal(t, "Shirt", ord.Items[0].Name)
	assert.Equal(t, int64(2000), ord.Items[0].LineTotal)

	// The cart is converted, so the next lookup starts fresh
	var converted cart.Cart
	require.NoError(t, db.First(&converted, ord.CartID).Error)
	assert.Equal(t, cart.CartStatusConverted, converted.Status)

	resp, err := carts.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, carts, db := newTestService(t)
	ctx := context.Background()

	// No cart at all
	_, err := svc.Checkout(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Cart exists but has no lines
	itemID := seedPricedItem(t, db, "Shirt", 1000)
	_, err = carts.AddItem(ctx, 1, itemID, 1)
	require.NoError(t, err)
	require.NoError(t, carts.ClearCart(ctx, 1))

	_, err = svc.Checkout(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListNewestFirst(t *testing.T) {
	svc, carts, db := newTestService(t)
	ctx := context.Background()

	itemID := seedPricedItem(t, db, "Shirt", 1000)

	_, err := carts.AddItem(ctx, 1, itemID, 1)
	require.NoError(t, err)
	first, err := svc.Checkout(ctx, 1)
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, 1, itemID, 3)
	require.NoError(t, err)
	second, err := svc.Checkout(ctx, 1)
	require.NoError(t, err)

	orders, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	require.Len(t, orders[0].Items, 1)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, carts, db := newTestService(t)
	ctx := context.Background()

	itemID := seedPricedItem(t, db, "Shirt", 1000)
	_, err := carts.AddItem(ctx, 1, itemID, 1)
	require.NoError(t, err)
	ord, err := svc.Checkout(ctx, 1)
	require.NoError(t, err)

	got, err := svc.Get(ctx, 1, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, ord.OrderNumber, got.OrderNumber)

	_, err = svc.Get(ctx, 2, ord.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestConvertCartLostRaceIsValidation(t *testing.T) {
	svc, carts, db := newTestService(t)
	ctx := context.Background()

	shirt := seedPricedItem(t, db, "Shirt", 1000)
	_, err := carts.AddItem(ctx, 1, shirt, 1)
	require.NoError(t, err)

	activeCart, err := carts.GetOrCreateActiveCart(ctx, 1)
	require.NoError(t, err)

	// Another checkout converted the cart first
	require.NoError(t, db.Model(&cart.Cart{}).
		Where("id = ?", activeCart.ID).
		Update("status", cart.CartStatusConverted).Error)

	err = svc.convertCart(db, activeCart.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
