package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"dopc/internal/homeapi"
)

// VenueCache stores venue documents as plain string keys with a TTL.
type VenueCache struct {
	client *redis.Client
}

func NewVenueCache(client *redis.Client) *VenueCache {
	return &VenueCache{client: client}
}

func (r *VenueCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, homeapi.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *VenueCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Connect opens a client and pings it once so misconfiguration shows at startup.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
