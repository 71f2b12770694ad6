package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get for an absent key.
var ErrCacheMiss = errors.New("cache miss")

// Cache backs the read side. Values are opaque strings.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// OrderCacheKey is where the order read model for a tracking number lives.
func OrderCacheKey(trackingNumber string) string {
	return "order:" + trackingNumber
}
