package homeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrCacheMiss is returned by a Store when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Store is a byte-oriented TTL cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedClient is a read-through cache in front of a Client. Cache failures
// never fail a request; they are logged and the upstream is asked instead.
type CachedClient struct {
	next  Client
	store Store
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedClient(next Client, store Store, ttl time.Duration, log *zap.Logger) *CachedClient {
	return &CachedClient{next: next, store: store, ttl: ttl, log: log}
}

func (c *CachedClient) GetStatic(ctx context.Context, venueSlug string) (StaticData, error) {
	var s StaticData
	err := c.readThrough(ctx, cacheKey(venueSlug, "static"), &s, func() (any, error) {
		return c.next.GetStatic(ctx, venueSlug)
	})
	return s, err
}

func (c *CachedClient) GetDynamic(ctx context.Context, venueSlug string) (DynamicData, error) {
	var d DynamicData
	err := c.readThrough(ctx, cacheKey(venueSlug, "dynamic"), &d, func() (any, error) {
		return c.next.GetDynamic(ctx, venueSlug)
	})
	return d, err
}

func (c *CachedClient) readThrough(ctx context.Context, key string, dst any, load func() (any, error)) error {
	b, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		if err := json.Unmarshal(b, dst); err == nil {
			return nil
		}
		c.log.Warn("discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, ErrCacheMiss):
		c.log.Warn("venue cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err := load()
	if err != nil {
		return err
	}
	b, err = json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
		c.log.Warn("venue cache write failed", zap.String("key", key), zap.Error(err))
	}
	return json.Unmarshal(b, dst)
}

func cacheKey(venueSlug, kind string) string {
	return fmt.Sprintf("dopc:venue:%s:%s", venueSlug, kind)
}
