package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps product refs in Redis as JSON so repeated cart lookups avoid the
// database. A nil client or non-positive TTL disables caching.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// GetRef loads a cached ref. It reports whether the key existed.
func (c *Cache) GetRef(ctx context.Context, key string) (Ref, bool, error) {
	if !c.enabled() || key == "" {
		return Ref{}, false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Ref{}, false, nil
		}
		return Ref{}, false, err
	}
	var ref Ref
	if err := json.Unmarshal(data, &ref); err != nil {
		return Ref{}, false, err
	}
	return ref, true, nil
}

// SetRef stores the ref with the configured TTL.
func (c *Cache) SetRef(ctx context.Context, key string, ref Ref) error {
	if !c.enabled() || key == "" {
		return nil
	}
	data, err := json.Marshal(ref)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate removes a cached ref, e.g. after a catalog update.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if !c.enabled() || key == "" {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}
