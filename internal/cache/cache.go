// Package cache stores serialized search responses. Search quota is the
// scarcest resource in the pipeline, so results are kept in a fast memory
// layer and optionally persisted to disk between runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the caching interface
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from the parts identifying a search request
// (provider, query, mode, result cap)
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "factchain:v1:" + hex.EncodeToString(hash[:])
}
