package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
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
	require.NoError(t, db.AutoMigrate(&Item{}, &ItemImage{}, &Price{}))

	cfg := &config.Config{}
	cfg.Storage = config.StorageConfig{
		Provider:    "local",
		Bucket:      "images",
		Placeholder: "/placeholder.jpg",
	}

	return NewService(db, nil, cfg), db
}

func seedItem(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	item := Item{Name: name, IsActive: true}
	require.NoError(t, db.Create(&item).Error)
	return item.ID
}

func addPrice(t *testing.T, db *gorm.DB, itemID uint, amount int64, priority int, from time.Time, to *time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&Price{
		ItemID:    itemID,
		Amount:    amount,
		Priority:  priority,
		ValidFrom: from,
		ValidTo:   to,
	}).Error)
}

func TestResolveEffectivePricePriorityWins(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)

	id := seedItem(t, db, "Flannel Polo")
	addPrice(t, db, id, 100, 1, now.Add(-365*24*time.Hour), nil)
	addPrice(t, db, id, 80, 5, yesterday, nil)

	price, err := svc.ResolveEffectivePrice(ctx, id, now)
	require.NoError(t, err)
	assert.Equal(t, int64(80), price)
}

func TestResolveEffectivePriceWindowFiltering(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	id := seedItem(t, db, "Denim Jacket")

	// Expired high-priority promotion
	expired := now.Add(-time.Hour)
	addPrice(t, db, id, 50, 10, now.Add(-48*time.Hour), &expired)
	// Not yet valid
	addPrice(t, db, id, 60, 10, now.Add(time.Hour), nil)
	// Currently valid base price with a closed window covering now
	later := now.Add(24 * time.Hour)
	addPrice(t, db, id, 120, 0, now.Add(-24*time.Hour), &later)

	price, err := svc.ResolveEffectivePrice(ctx, id, now)
	require.NoError(t, err)
	assert.Equal(t, int64(120), price)
}

func TestResolveEffectivePriceNoRowIsZero(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	id := seedItem(t, db, "Unpriced")

	price, err := svc.ResolveEffectivePrice(ctx, id, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(0), price)

	// Unknown item behaves the same way
	price, err = svc.ResolveEffectivePrice(ctx, 9999, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(0), price)
}

func TestResolveEffectivePriceTieBreakOldestRow(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	id := seedItem(t, db, "Tied")
	addPrice(t, db, id, 200, 3, now.Add(-48*time.Hour), nil)
	addPrice(t, db, id, 180, 3, now.Add(-24*time.Hour), nil)

	price, err := svc.ResolveEffectivePrice(ctx, id, now)
	require.NoError(t, err)
	// Equal priority resolves to the earliest-inserted row
	assert.Equal(t, int64(200), price)
}

func TestEffectivePricesBatch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	a := seedItem(t, db, "A")
	b := seedItem(t, db, "B")
	c := seedItem(t, db, "C") // no price

	addPrice(t, db, a, 100, 1, now.Add(-time.Hour), nil)
	addPrice(t, db, a, 80, 5, now.Add(-time.Hour), nil)
	addPrice(t, db, b, 55, 0, now.Add(-time.Hour), nil)

	prices, err := svc.EffectivePrices(ctx, []uint{a, b, c}, now)
	require.NoError(t, err)

	assert.Equal(t, int64(80), prices[a])
	assert.Equal(t, int64(55), prices[b])
	_, ok := prices[c]
	assert.False(t, ok)
}

func TestListItems(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	id := seedItem(t, db, "Flannel Polo")
	require.NoError(t, db.Create(&ItemImage{ItemID: id, ObjectID: "flannel-front.jpg"}).Error)
	addPrice(t, db, id, 1500, 0, now.Add(-time.Hour), nil)

	inactive := Item{Name: "Hidden", IsActive: false}
	require.NoError(t, db.Create(&inactive).Error)

	resp, err := svc.ListItems(ctx, &ListRequest{Page: 1, Limit: 20})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Flannel Polo", resp.Items[0].Name)
	assert.Equal(t, int64(1500), resp.Items[0].Price)
	assert.Equal(t, []string{"/storage/images/flannel-front.jpg"}, resp.Items[0].Images)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestListItemsSearchAndPlaceholder(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedItem(t, db, "Denim Jacket")
	seedItem(t, db, "Flannel Polo")

	resp, err := svc.ListItems(ctx, &ListRequest{Page: 1, Limit: 20, Search: "Denim"})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Denim Jacket", resp.Items[0].Name)
	// No images and no price rows
	assert.Equal(t, []string{"/placeholder.jpg"}, resp.Items[0].Images)
	assert.Equal(t, int64(0), resp.Items[0].Price)
}

func TestGetItem(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	id := seedItem(t, db, "Flannel Polo")
	addPrice(t, db, id, 999, 0, now.Add(-time.Hour), nil)

	detail, err := svc.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Flannel Polo", detail.Name)
	assert.Equal(t, int64(999), detail.Price)

	_, err = svc.GetItem(ctx, 4242)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestInactiveItemPersistsInactive(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	item := Item{Name: "Hidden", IsActive: false}
	require.NoError(t, db.Create(&item).Error)

	var stored Item
	require.NoError(t, db.First(&stored, item.ID).Error)
	assert.False(t, stored.IsActive)

	_, err := svc.GetItem(ctx, item.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
