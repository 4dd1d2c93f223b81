package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dronehub-backend/internal/domain"
)

// KV is the subset of RedisClient the product cache needs.
type KV interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

// ProductCache stores product details by handle.
type ProductCache struct {
	kv  KV
	ttl time.Duration
}

func NewProductCache(kv KV, ttl time.Duration) *ProductCache {
	return &ProductCache{kv: kv, ttl: ttl}
}

func (c *ProductCache) key(handle string) string {
	return fmt.Sprintf("product:handle:%s", handle)
}

// Get returns ErrCacheMiss when the product is not cached.
func (c *ProductCache) Get(ctx context.Context, handle string) (*domain.Product, error) {
	raw, err := c.kv.Get(ctx, c.key(handle))
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached product: %w", err)
	}
	return &p, nil
}

func (c *ProductCache) Set(ctx context.Context, p *domain.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	return c.kv.Set(ctx, c.key(p.Handle), string(data), c.ttl)
}

func (c *ProductCache) Invalidate(ctx context.Context, handles ...string) error {
	if len(handles) == 0 {
		return nil
	}
	keys := make([]string, len(handles))
	for i, h := range handles {
		keys[i] = c.key(h)
	}
	return c.kv.Delete(ctx, keys...)
}
