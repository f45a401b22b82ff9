// Package cache defines the byte cache used to memoize receipt-scan
// results, keyed by a digest of the image bytes: re-scanning a photo the
// service has already seen never pays for a second model call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("cache entry not found")

// Cache is the abstraction the scanning service depends on. This allows
// swapping backends (Redis, in-memory, none) without changing callers.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// ImageKey derives the cache key for a receipt image.
func ImageKey(imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return "scan:" + hex.EncodeToString(sum[:])
}
