package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/parkbooking/config"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only when it still holds the caller's token,
// so an expired lock taken over by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisCache struct {
	client     *redis.Client
	parkingTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, parkingTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		parkingTTL: parkingTTL,
	}
}

// GetParking returns nil, nil on a cache miss.
func (c *RedisCache) GetParking(ctx context.Context, id int64) (*domain.Parking, error) {
	data, err := c.client.Get(ctx, parkingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var parking domain.Parking
	if err := json.Unmarshal(data, &parking); err != nil {
		return nil, err
	}
	return &parking, nil
}

func (c *RedisCache) SetParking(ctx context.Context, parking *domain.Parking) error {
	payload, err := json.Marshal(parking)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, parkingKey(parking.ID), payload, c.parkingTTL).Err()
}

// AcquireParkingLock returns the lock token and true when the lock was taken.
func (c *RedisCache) AcquireParkingLock(ctx context.Context, parkingID int64, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, parkingLockKey(parkingID), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (c *RedisCache) ReleaseParkingLock(ctx context.Context, parkingID int64, token string) error {
	return releaseScript.Run(ctx, c.client, []string{parkingLockKey(parkingID)}, token).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func parkingKey(id int64) string {
	return fmt.Sprintf("cache:parking:%d", id)
}

func parkingLockKey(parkingID int64) string {
	return fmt.Sprintf("lock:parking:%d:bookings", parkingID)
}
