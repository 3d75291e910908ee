package cache

import (
	"context"
	"time"
)

// Cache stores rendered documents keyed by a content version
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
