package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheHelper provides common caching operations for repositories.
type CacheHelper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCacheHelper creates a new cache helper instance. The client may be nil;
// every operation is then a miss and the repository falls through to the
// database.
func NewCacheHelper(client *redis.Client, prefix string, ttl time.Duration) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// ErrCacheMiss is returned when a key is absent or caching is disabled.
var ErrCacheMiss = errors.New("cache miss")

func (h *CacheHelper) key(parts ...any) string {
	key := h.prefix
	for _, p := range parts {
		key += ":" + fmt.Sprint(p)
	}
	return key
}

// GetBool reads a cached boolean answer.
func (h *CacheHelper) GetBool(ctx context.Context, parts ...any) (bool, error) {
	if h.client == nil {
		return false, ErrCacheMiss
	}
	raw, err := h.client.Get(ctx, h.key(parts...)).Result()
	if errors.Is(err, redis.Nil) {
		return false, ErrCacheMiss
	}
	if err != nil {
		return false, ErrCacheMiss
	}
	return raw == "1", nil
}

// SetBool caches a boolean answer with the helper's TTL.
func (h *CacheHelper) SetBool(ctx context.Context, value bool, parts ...any) {
	if h.client == nil {
		return
	}
	raw := "0"
	if value {
		raw = "1"
	}
	// Cache failures are not surfaced; the source of truth is the database.
	h.client.Set(ctx, h.key(parts...), raw, h.ttl)
}

// GetJSON reads and unmarshals a cached object into dest.
func (h *CacheHelper) GetJSON(ctx context.Context, dest any, parts ...any) error {
	if h.client == nil {
		return ErrCacheMiss
	}
	raw, err := h.client.Get(ctx, h.key(parts...)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrCacheMiss
	}
	return nil
}

// SetJSON marshals and caches an object with the helper's TTL.
func (h *CacheHelper) SetJSON(ctx context.Context, value any, parts ...any) {
	if h.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	h.client.Set(ctx, h.key(parts...), raw, h.ttl)
}

// Invalidate removes cached answers.
func (h *CacheHelper) Invalidate(ctx context.Context, keys ...[]any) {
	if h.client == nil {
		return
	}
	full := make([]string, 0, len(keys))
	for _, parts := range keys {
		full = append(full, h.key(parts...))
	}
	if len(full) > 0 {
		h.client.Del(ctx, full...)
	}
}

// InvalidatePrefix removes every cached answer under an additional prefix,
// e.g. all grants of one user after a bulk delete.
func (h *CacheHelper) InvalidatePrefix(ctx context.Context, parts ...any) error {
	if h.client == nil {
		return nil
	}
	// The trailing separator keeps the match on segment boundaries, so
	// invalidating user 5 leaves user 50 untouched.
	pattern := h.key(parts...) + ":*"
	iter := h.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		h.client.Del(ctx, iter.Val())
	}
	return iter.Err()
}

// HealthCheck pings the cache backend.
func (h *CacheHelper) HealthCheck(ctx context.Context) error {
	if h.client == nil {
		return nil
	}
	return h.client.Ping(ctx).Err()
}
