package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"greenroute/internal/model"
)

// ResultCache stores serialized optimization results in Redis, keyed by a
// hash of the canonical request. Results are deterministic for a fixed
// catalog, so serving a cached result is indistinguishable from recomputing,
// provided the cache is flushed on catalog reload.
type ResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewFromURL connects to Redis at url and verifies the connection.
func NewFromURL(ctx context.Context, url string, ttl time.Duration) (*ResultCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &ResultCache{rdb: rdb, ttl: ttl}, nil
}

// Key derives the cache key for a request. encoding/json emits struct
// fields in declaration order, so equal requests hash equally.
func Key(req model.OptimizeRequest) string {
	b, _ := json.Marshal(req)
	sum := sha256.Sum256(b)
	return "greenroute:result:" + hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, or false on miss or any Redis
// error; the cache degrades to recomputation, never to failure.
func (c *ResultCache) Get(ctx context.Context, key string) (*model.OptimizeResponse, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var res model.OptimizeResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	return &res, true
}

// Set stores res under key with the configured TTL. Errors are dropped for
// the same degrade-to-recompute reason as Get.
func (c *ResultCache) Set(ctx context.Context, key string, res *model.OptimizeResponse) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Close releases the Redis connection.
func (c *ResultCache) Close() error { return c.rdb.Close() }
