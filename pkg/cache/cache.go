package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotExist is returned by GetAs for a missing or expired key.
var ErrKeyNotExist = errors.New("cache key not exists")

// Cache stores JSON encodable values such as catalog search results.
// Expire duration <= 0 means the key never expires.
type Cache interface {
	GetAs(ctx context.Context, key string, out interface{}) error
	SetExp(ctx context.Context, key string, inValue interface{}, expireDur time.Duration) error
	Delete(ctx context.Context, key string) error
}
