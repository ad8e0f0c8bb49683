package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/catalog"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Item{}, &catalog.ItemImage{}, &catalog.Price{},
		&Cart{}, &CartItem{},
	))

	cfg := &config.Config{}
	cfg.Storage = config.StorageConfig{Provider: "local", Bucket: "images", Placeholder: "/placeholder.jpg"}

	return NewService(db, nil, cfg), db
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

func TestGetOrCreateActiveCartSequentialIdempotence(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreateActiveCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, CartStatusActive, first.Status)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), first.ExpiresAt, time.Minute)

	second, err := svc.GetOrCreateActiveCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&Cart{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateActiveCartIgnoresInactiveCarts(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	converted := Cart{UserID: 1, Status: CartStatusConverted}
	require.NoError(t, db.Create(&converted).Error)

	cart, err := svc.GetOrCreateActiveCart(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, converted.ID, cart.ID)
	assert.Equal(t, CartStatusActive, cart.Status)
}

func TestAddItemTwiceAccumulatesQuantityKeepsSnapshot(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	itemID := seedPricedItem(t, db, "Flannel Polo", 1500)

	res1, err := svc.AddItem(ctx, 7, itemID, 2)
	require.NoError(t, err)
	assert.False(t, res1.Updated)
	assert.Equal(t, "Added to cart", res1.Message)

	// Price changes after the first add; the snapshot must not move
	require.NoError(t, db.Create(&catalog.Price{
		ItemID:    itemID,
		Amount:    9900,
		Priority:  10,
		ValidFrom: time.Now().UTC().Add(-time.Minute),
	}).Error)

	res2, err := svc.AddItem(ctx, 7, itemID, 3)
	require.NoError(t, err)
	assert.True(t, res2.Updated)
	assert.Equal(t, res1.CartID, res2.CartID)

	var lines []CartItem
	require.NoError(t, db.Where("cart_id = ? AND item_id = ?", res1.CartID, itemID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, int64(1500), lines[0].PriceAtTime)
}

func TestAddItemSnapshotsEffectivePrice(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	item := catalog.Item{Name: "Promo Tee", IsActive: true}
	require.NoError(t, db.Create(&item).Error)
	now := time.Now().UTC()
	require.NoError(t, db.Create(&catalog.Price{ItemID: item.ID, Amount: 100, Priority: 1, ValidFrom: now.Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&catalog.Price{ItemID: item.ID, Amount: 80, Priority: 5, ValidFrom: now.Add(-24 * time.Hour)}).Error)

	_, err := svc.AddItem(ctx, 9, item.ID, 1)
	require.NoError(t, err)

	var line CartItem
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&line).Error)
	assert.Equal(t, int64(80), line.PriceAtTime)
}

func TestAddItemUnpricedItemSnapshotsZero(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	item := catalog.Item{Name: "Unpriced", IsActive: true}
	require.NoError(t, db.Create(&item).Error)

	_, err := svc.AddItem(ctx, 3, item.ID, 1)
	require.NoError(t, err)

	var line CartItem
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&line).Error)
	assert.Equal(t, int64(0), line.PriceAtTime)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.AddItem(ctx, 1, 1, -2)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRemoveItemZeroRowsIsSuccess(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	itemID := seedPricedItem(t, db, "Denim Jacket", 2000)

	_, err := svc.AddItem(ctx, 5, itemID, 1)
	require.NoError(t, err)

	// Removing an item that was never added succeeds
	require.NoError(t, svc.RemoveItem(ctx, 5, 99999))

	// Removing the real line also succeeds and empties the cart
	require.NoError(t, svc.RemoveItem(ctx, 5, itemID))

	resp, err := svc.GetCart(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}

func TestRemoveItemWithoutActiveCart(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.RemoveItem(ctx, 42, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestGetCartTotals(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	shirt := seedPricedItem(t, db, "Shirt", 1000)
	jacket := seedPricedItem(t, db, "Jacket", 2500)

	_, err := svc.AddItem(ctx, 2, shirt, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 2, jacket, 1)
	require.NoError(t, err)

	resp, err := svc.GetCart(ctx, 2)
	require.NoError(t, err)

	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "Shirt", resp.Lines[0].Name)
	assert.Equal(t, int64(2000), resp.Lines[0].LineTotal)
	assert.Equal(t, 3, resp.TotalQuantity)
	assert.Equal(t, int64(4500), resp.Subtotal)
}

func TestGetCartWithoutActiveCartIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.GetCart(ctx, 77)
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
	assert.Zero(t, resp.Subtotal)

	count, err := svc.ItemCount(ctx, 77)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClearCart(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	itemID := seedPricedItem(t, db, "Shirt", 1000)
	_, err := svc.AddItem(ctx, 11, itemID, 4)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, 11))

	count, err := svc.ItemCount(ctx, 11)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Clearing again with nothing there is fine
	require.NoError(t, svc.ClearCart(ctx, 11))

	// The cart row itself survives a clear
	var carts int64
	require.NoError(t, db.Model(&Cart{}).Where("user_id = ?", 11).Count(&carts).Error)
	assert.Equal(t, int64(1), carts)
}
