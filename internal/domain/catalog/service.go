// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
	"github.com/your-org/storefront-api/internal/pkg/storage"
	"gorm.io/gorm"
)

// listCacheTTL bounds staleness of the cached listing page.
const listCacheTTL = 60 * time.Second

// Service handles catalog reads: item listing, item detail and
// effective price resolution.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	urls        *storage.Resolver
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		urls:        storage.NewResolver(cfg),
	}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	Search   string `form:"search"`
	Category string `form:"category"`
}

// ItemSummary is one listing entry with its resolved price and image URLs
type ItemSummary struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    int64    `json:"price"`
	Images   []string `json:"images"`
}

// ListResponse represents a catalog page
type ListResponse struct {
	Items      []ItemSummary `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ItemDetail is the single-item response
type ItemDetail struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
}

// ResolveEffectivePrice returns the price applicable to an item at the
// given instant: among rows whose validity window covers asOf, the one
// with the highest priority wins; equal priorities fall back to the
// oldest row (lowest id). An item with no qualifying row resolves to 0.
func (s *Service) ResolveEffectivePrice(ctx context.Context, itemID uint, asOf time.Time) (int64, error) {
	var row Price
	err := s.db.WithContext(ctx).
		Where("item_id = ? AND valid_from <= ?", itemID, asOf).
		Where(s.db.Where("valid_to IS NULL").Or("valid_to >= ?", asOf)).
		Order("priority DESC, id ASC").
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindDataStore, "failed to resolve effective price", err)
	}

	return row.Amount, nil
}

// EffectivePrices resolves prices for a set of items in one query.
// Rows arrive ordered by priority, so the first row seen per item wins,
// mirroring ResolveEffectivePrice. Items without a qualifying row are
// absent from the map.
func (s *Service) EffectivePrices(ctx context.Context, itemIDs []uint, asOf time.Time) (map[uint]int64, error) {
	prices := make(map[uint]int64, len(itemIDs))
	if len(itemIDs) == 0 {
		return prices, nil
	}

	var rows []Price
	err := s.db.WithContext(ctx).
		Where("item_id IN ? AND valid_from <= ?", itemIDs, asOf).
		Where(s.db.Where("valid_to IS NULL").Or("valid_to >= ?", asOf)).
		Order("priority DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load prices", err)
	}

	for _, row := range rows {
		if _, ok := prices[row.ItemID]; !ok {
			prices[row.ItemID] = row.Amount
		}
	}

	return prices, nil
}

// ListItems returns a page of active items with prices and image URLs
func (s *Service) ListItems(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	cacheKey := fmt.Sprintf("catalog:list:%d:%d:%s:%s", req.Page, req.Limit, req.Search, req.Category)
	if cached := s.cachedList(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	query := s.db.WithContext(ctx).Model(&Item{}).Where("is_active = ?", true)
	if req.Search != "" {
		query = query.Where("name LIKE ?", "%"+req.Search+"%")
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to count items", err)
	}

	var items []Item
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Order("created_at DESC, id DESC").
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to list items", err)
	}

	itemIDs := make([]uint, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	prices, err := s.EffectivePrices(ctx, itemIDs, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	summaries := make([]ItemSummary, len(items))
	for i, item := range items {
		summaries[i] = ItemSummary{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Price:    prices[item.ID],
			Images:   s.imageURLs(item.Images),
		}
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	resp := &ListResponse{
		Items: summaries,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}

	s.storeList(ctx, cacheKey, resp)

	return resp, nil
}

// GetItem returns a single active item with its resolved price
func (s *Service) GetItem(ctx context.Context, itemID uint) (*ItemDetail, error) {
	var item Item
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ? AND is_active = ?", itemID, true).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "item %d not found", itemID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load item", err)
	}

	price, err := s.ResolveEffectivePrice(ctx, item.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &ItemDetail{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       price,
		Images:      s.imageURLs(item.Images),
	}, nil
}

func (s *Service) imageURLs(images []ItemImage) []string {
	if len(images) == 0 {
		return []string{s.urls.Placeholder()}
	}

	urls := make([]string, len(images))
	for i, img := range images {
		urls[i] = s.urls.PublicURL(img.ObjectID)
	}
	return urls
}

func (s *Service) cachedList(ctx context.Context, key string) *ListResponse {
	if s.redisClient == nil {
		return nil
	}

	data, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		// Cache miss or Redis down, serve from the database
		return nil
	}

	var resp ListResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *Service) storeList(ctx context.Context, key string, resp *ListResponse) {
	if s.redisClient == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	// Best effort, a failed cache write never fails the request
	s.redisClient.Set(ctx, key, data, listCacheTTL)
}
