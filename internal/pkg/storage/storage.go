// internal/pkg/storage/storage.go
package storage

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-api/internal/config"
)

// Resolver builds public URLs for objects in the catalog image bucket.
// Objects are read-only from this service's perspective; uploads happen
// out of band.
type Resolver struct {
	config *config.Config
}

// NewResolver creates a new URL resolver
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		config: cfg,
	}
}

// PublicURL returns the public URL for an object in the default bucket.
// An empty object id resolves to the configured placeholder image.
func (r *Resolver) PublicURL(objectID string) string {
	return r.PublicURLIn(r.config.Storage.Bucket, objectID)
}

// PublicURLIn returns the public URL for an object in the given bucket
func (r *Resolver) PublicURLIn(bucket, objectID string) string {
	if objectID == "" {
		return r.config.Storage.Placeholder
	}

	objectID = strings.TrimPrefix(objectID, "/")

	switch r.config.Storage.Provider {
	case "cdn":
		base := strings.TrimSuffix(r.config.Storage.PublicBase, "/")
		return fmt.Sprintf("%s/%s/%s", base, bucket, objectID)
	default:
		return fmt.Sprintf("/storage/%s/%s", bucket, objectID)
	}
}

// Placeholder returns the image URL used when an item has no images
func (r *Resolver) Placeholder() string {
	return r.config.Storage.Placeholder
}
