package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/odnowakanapowa/booking-api/internal/config"
)

const (
	ServicesKey = "catalog:services"

	slotsPrefix = "slots:"
	occupiedKey = "dates:occupied"

	defaultTTL = 5 * time.Minute
	// occupied dates shift on every write anywhere, so they only get
	// a short TTL instead of explicit invalidation
	occupiedTTL = time.Minute
)

func SlotsKey(date string) string {
	return slotsPrefix + date
}

func OccupiedKey() string {
	return occupiedKey
}

// Cache is a read-path cache over redis. A nil *Cache is valid and
// turns every operation into a no-op, so redis stays optional.
type Cache struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *Cache {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, caching disabled: %v", err)
		return nil
	}

	return &Cache{rdb: rdb}
}

func (c *Cache) GetJSON(ctx context.Context, key string, v any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	ttl := defaultTTL
	if key == occupiedKey {
		ttl = occupiedTTL
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Println("cache set error:", err)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("cache delete error:", err)
	}
}
