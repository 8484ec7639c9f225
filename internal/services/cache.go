package services

import (
	"context"
	"time"
)

// Cache is the slice of a cache client consumed by the services layer. A nil
// Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
