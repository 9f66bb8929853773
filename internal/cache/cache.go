package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("key not found")

// Cache stores opaque payloads with an expiration. Get returns ErrCacheMiss
// when the key is absent or expired.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
