// Package cache provides the caching layer for literature search results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a free-text query
func Key(query string) string {
	hash := sha256.Sum256([]byte(query))
	return "medfact:v1:" + hex.EncodeToString(hash[:])
}
