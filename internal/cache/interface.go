package cache

import (
	"context"
	"time"
)

// Cache is a JSON-over-key-value abstraction. Get reports whether the key
// existed; a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	DiscountKeyPrefix = "discount"
	SessionKeyPrefix  = "session"
)
