package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-api/internal/config"
)

func resolverWith(provider, base string) *Resolver {
	cfg := &config.Config{}
	cfg.Storage = config.StorageConfig{
		Provider:    provider,
		Bucket:      "images",
		PublicBase:  base,
		Placeholder: "/placeholder.jpg",
	}
	return NewResolver(cfg)
}

func TestPublicURLLocal(t *testing.T) {
	r := resolverWith("local", "")
	assert.Equal(t, "/storage/images/abc123.jpg", r.PublicURL("abc123.jpg"))
}

func TestPublicURLCDN(t *testing.T) {
	r := resolverWith("cdn", "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/images/abc123.jpg", r.PublicURL("abc123.jpg"))
	assert.Equal(t, "https://cdn.example.com/banners/hero.png", r.PublicURLIn("banners", "hero.png"))
}

func TestPublicURLEmptyObjectFallsBack(t *testing.T) {
	r := resolverWith("cdn", "https://cdn.example.com")
	assert.Equal(t, "/placeholder.jpg", r.PublicURL(""))
	assert.Equal(t, "/placeholder.jpg", r.Placeholder())
}
