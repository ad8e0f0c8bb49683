// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/catalog"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/support"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},

		&catalog.Item{},
		&catalog.ItemImage{},
		&catalog.Price{},

		&cart.Cart{},
		&cart.CartItem{},

		&wishlist.WishlistEntry{},

		&order.Order{},
		&order.OrderItem{},

		&support.ContactMessage{},
		&support.FAQEntry{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// One active cart per user, enforced at the database level
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_active ON carts(user_id) WHERE status = 'active'",

		// Price resolution scans prices by item within a validity window
		"CREATE INDEX IF NOT EXISTS idx_prices_item_window ON prices(item_id, valid_from, valid_to)",
		"CREATE INDEX IF NOT EXISTS idx_prices_item_priority ON prices(item_id, priority DESC)",

		// Items
		"CREATE INDEX IF NOT EXISTS idx_items_category_active ON items(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_items_created_at ON items(created_at DESC)",

		// Carts and cart lines
		"CREATE INDEX IF NOT EXISTS idx_carts_user_status ON carts(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id)",

		// Wishlist
		"CREATE INDEX IF NOT EXISTS idx_wishlist_entries_user ON wishlist_entries(user_id, created_at DESC)",

		// Orders
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Users
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Support
		"CREATE INDEX IF NOT EXISTS idx_faq_entries_active_sort ON faq_entries(is_active, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_contact_messages_created ON contact_messages(created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedTestUser(); err != nil {
		return fmt.Errorf("failed to seed test user: %w", err)
	}

	if err := m.seedCatalog(); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	if err := m.seedFAQ(); err != nil {
		return fmt.Errorf("failed to seed FAQ: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedTestUser() error {
	log.Println("👤 Seeding test user...")

	var existing user.User
	result := m.db.Where("email = ?", "test@example.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("test123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		testUser := user.User{
			Email:        "test@example.com",
			PasswordHash: string(hashedPassword),
			FirstName:    "Test",
			LastName:     "User",
			IsActive:     true,
		}

		if err := m.db.Create(&testUser).Error; err != nil {
			return err
		}

		log.Println("✅ Created test user: test@example.com (password: test123)")
	} else {
		log.Println("⏭️ Test user already exists")
	}

	return nil
}

// seedCatalog creates sample items with standard and promotional prices
func (m *Migration) seedCatalog() error {
	log.Println("🛍️ Seeding catalog...")

	var itemCount int64
	m.db.Model(&catalog.Item{}).Count(&itemCount)
	if itemCount > 0 {
		log.Println("⏭️ Catalog items already exist")
		return nil
	}

	now := time.Now()

	items := []struct {
		item   catalog.Item
		images []catalog.ItemImage
		prices []catalog.Price
	}{
		{
			item: catalog.Item{
				Name:        "Classic Flannel Shirt",
				Description: "Soft brushed cotton flannel in a relaxed fit.",
				Category:    "tops",
				IsActive:    true,
			},
			images: []catalog.ItemImage{
				{ObjectID: "flannel-front.jpg", SortOrder: 1},
				{ObjectID: "flannel-back.jpg", SortOrder: 2},
			},
			prices: []catalog.Price{
				{Amount: 129900, ValidFrom: now.AddDate(0, -1, 0), Priority: 0},
				{Amount: 99900, ValidFrom: now.AddDate(0, 0, -3), ValidTo: ptrTime(now.AddDate(0, 0, 11)), Priority: 10},
			},
		},
		{
			item: catalog.Item{
				Name:        "Wide-Leg Denim Trousers",
				Description: "High-waisted wide-leg denim with raw hem.",
				Category:    "bottoms",
				IsActive:    true,
			},
			images: []catalog.ItemImage{
				{ObjectID: "denim-front.jpg", SortOrder: 1},
			},
			prices: []catalog.Price{
				{Amount: 159900, ValidFrom: now.AddDate(0, -1, 0), Priority: 0},
			},
		},
		{
			item: catalog.Item{
				Name:        "Canvas Tote Bag",
				Description: "Heavyweight canvas tote with interior pocket.",
				Category:    "accessories",
				IsActive:    true,
			},
			prices: []catalog.Price{
				{Amount: 49900, ValidFrom: now.AddDate(0, -1, 0), Priority: 0},
			},
		},
	}

	for _, seed := range items {
		item := seed.item
		if err := m.db.Create(&item).Error; err != nil {
			return err
		}
		for _, img := range seed.images {
			img.ItemID = item.ID
			if err := m.db.Create(&img).Error; err != nil {
				return err
			}
		}
		for _, price := range seed.prices {
			price.ItemID = item.ID
			if err := m.db.Create(&price).Error; err != nil {
				return err
			}
		}
		log.Printf("✅ Created item: %s", item.Name)
	}

	return nil
}

func (m *Migration) seedFAQ() error {
	log.Println("❓ Seeding FAQ entries...")

	var faqCount int64
	m.db.Model(&support.FAQEntry{}).Count(&faqCount)
	if faqCount > 0 {
		log.Println("⏭️ FAQ entries already exist")
		return nil
	}

	entries := []support.FAQEntry{
		{
			Question:  "How long does shipping take?",
			Answer:    "Orders within Metro Manila arrive in 2-3 business days. Provincial orders take 5-7 business days.",
			SortOrder: 1,
			IsActive:  true,
		},
		{
			Question:  "What payment methods do you accept?",
			Answer:    "We accept cash on delivery, GCash, and all major credit and debit cards.",
			SortOrder: 2,
			IsActive:  true,
		},
		{
			Question:  "Can I return or exchange an item?",
			Answer:    "Yes, items can be returned or exchanged within 7 days of delivery as long as tags are intact.",
			SortOrder: 3,
			IsActive:  true,
		},
		{
			Question:  "How do I track my order?",
			Answer:    "Once your order ships you will receive a tracking number by email.",
			SortOrder: 4,
			IsActive:  true,
		},
	}

	for _, entry := range entries {
		if err := m.db.Create(&entry).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Created %d FAQ entries", len(entries))
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"contact_messages",
		"faq_entries",
		"order_items",
		"orders",
		"wishlist_entries",
		"cart_items",
		"carts",
		"prices",
		"item_images",
		"items",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
