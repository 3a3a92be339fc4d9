package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/aadeeee/booking-backend/internal/domain"
)

const statusCacheKey = "rooms:statuses"

// RoomStatusCache keeps the projected room-status listing in Redis for a
// short TTL. It is only a read accelerator: the projection is recomputed
// from the store on every miss, and every booking mutation invalidates
// the key, so stale reads are bounded by the TTL.
type RoomStatusCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRoomStatusCache(client *redis.Client, keyPrefix string, ttl time.Duration) *RoomStatusCache {
	if client == nil {
		panic("redis client cannot be nil for RoomStatusCache")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RoomStatusCache{client: client, prefix: keyPrefix, ttl: ttl}
}

func (c *RoomStatusCache) key() string {
	return c.prefix + statusCacheKey
}

// Get returns the cached listing, or (nil, nil) on a miss. Redis errors
// are reported but callers treat them as misses.
func (c *RoomStatusCache) Get(ctx context.Context) ([]domain.RoomStatusEntry, error) {
	raw, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var entries []domain.RoomStatusEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Corrupt cache entry; drop it and treat as a miss.
		logrus.WithError(err).Warn("Room status cache entry corrupt, invalidating")
		c.Invalidate(ctx)
		return nil, nil
	}
	return entries, nil
}

func (c *RoomStatusCache) Set(ctx context.Context, entries []domain.RoomStatusEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(), raw, c.ttl).Err()
}

// Invalidate drops the cached listing. Failures are logged, not
// propagated: the TTL bounds staleness even when the delete is lost.
func (c *RoomStatusCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate room status cache")
	}
}
