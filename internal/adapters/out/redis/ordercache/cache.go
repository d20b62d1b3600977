// Package ordercache keeps JSON snapshots of orders in Redis for the read path.
//
// Entries expire after a TTL and are deleted after a command changes or
// removes the order. A reader that loaded the order before such a write may
// still Set the older snapshot after the delete; the get-order query re-reads
// the stored version after every Set and drops the entry when it moved on.
// A failed Invalidate leaves a stale entry until the TTL expires.
package ordercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "orders:order:"

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisOrderCache implements ports.OrderCache.
type RedisOrderCache struct {
	store cmdable
	ttl   time.Duration
}

func NewRedisOrderCache(client *redis.Client, ttl time.Duration) *RedisOrderCache {
	return &RedisOrderCache{store: client, ttl: ttl}
}

// Connect opens a client for addr and verifies it answers PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func key(id kernel.UUID) string {
	return keyPrefix + id.String()
}

type snapshot struct {
	ID        string          `json:"id"`
	StoreID   string          `json:"store_id"`
	Details   json.RawMessage `json:"details"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *RedisOrderCache) Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	payload, err := c.store.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	restored, err := decode([]byte(payload))
	if err != nil {
		// drop the unreadable entry so the next read repopulates it
		_ = c.store.Del(ctx, key(id)).Err()
		return nil, false, fmt.Errorf("decode cached order %s: %w", id, err)
	}
	return restored, true, nil
}

func (c *RedisOrderCache) Set(ctx context.Context, aggregate *order.Order) error {
	payload, err := encode(aggregate)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key(aggregate.ID()), string(payload), c.ttl).Err()
}

func (c *RedisOrderCache) Invalidate(ctx context.Context, id kernel.UUID) error {
	return c.store.Del(ctx, key(id)).Err()
}

func encode(aggregate *order.Order) ([]byte, error) {
	details, err := aggregate.Details().MarshalJSON()
	if err != nil {
		return nil, err
	}

	return json.Marshal(snapshot{
		ID:        aggregate.ID().String(),
		StoreID:   aggregate.StoreID(),
		Details:   details,
		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	})
}

func decode(payload []byte) (*order.Order, error) {
	var s snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(s.ID)
	if err != nil {
		return nil, err
	}

	details, err := order.ParseDetails(s.Details)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, s.StoreID, details, s.Version, s.CreatedAt.UTC(), s.UpdatedAt.UTC())
}
