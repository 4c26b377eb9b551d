package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source internal/cache/cache.go -destination=internal/cache/cache_mock_test.go -package=cache

// DefaultTTL applies to price and idempotency entries unless configured otherwise.
const DefaultTTL = 600 * time.Second

// Backend is the storage contract shared by the process-local and the
// shared (redis) stores. Expired entries must read as absent.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX stores value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Cache stores JSON-encoded values on top of a Backend.
type Cache struct {
	backend Backend
	logger  *zap.Logger
}

func New(backend Backend, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		backend: backend,
		logger:  logger,
	}
}

// Get decodes the value under key into dst. Missing, expired, unreadable
// and undecodable entries all read as absent.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	raw, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed, treating as miss",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("cache entry undecodable, treating as miss",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, key, raw, ttl)
}

func (c *Cache) SetIfAbsent(ctx context.Context, key string, v any, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	return c.backend.SetNX(ctx, key, raw, ttl)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, key)
}
