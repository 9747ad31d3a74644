package usecase

import (
	"context"
	"time"
)

// SearchCache is the cache surface the read usecases need. The Redis
// cache satisfies it; a nil implementation bypasses caching entirely.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
