// Package cache stores fetched pages so repeated runs do not re-hit
// nature.com. A memory layer serves the current process; a disk layer
// persists across runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/ndrozd/exordium/internal/model"
)

// Cache is the storage contract shared by all layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ForConfig builds the configured page cache, or nil when caching is off.
// The default directory is ~/.exordium/cache.
func ForConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	dir := cfg.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		dir = filepath.Join(home, ".exordium", "cache")
	}
	return NewLayeredCache(cfg.MemoryTTL, dir, cfg.DiskTTL)
}

// CacheKey derives the storage key for a URL. Keys are namespaced and
// versioned so a shared cache directory survives format changes.
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "exordium:v1:" + hex.EncodeToString(hash[:])
}
