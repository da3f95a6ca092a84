package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dopc/internal/homeapi"
)

// unreachable points at a port nothing listens on.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Connect(ctx, "127.0.0.1:1", "", 0)

	assert.Error(t, err)
}

func TestVenueCache_ConnectionErrorIsNotAMiss(t *testing.T) {
	client := unreachable()
	defer client.Close()
	cache := NewVenueCache(client)

	_, err := cache.Get(context.Background(), "dopc:venue:v:static")
	require.Error(t, err)
	assert.NotErrorIs(t, err, homeapi.ErrCacheMiss)

	assert.Error(t, cache.Set(context.Background(), "dopc:venue:v:static", []byte("{}"), time.Minute))
}

func newTestCache(t *testing.T) (*VenueCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewVenueCache(client), mr
}

func TestVenueCache_MissingKeyIsAMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "dopc:venue:v:static")

	assert.ErrorIs(t, err, homeapi.ErrCacheMiss)
}

func TestVenueCache_SetGetWithTTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	key := "dopc:venue:v:dynamic"
	doc := []byte(`{"base_price":190}`)

	require.NoError(t, cache.Set(ctx, key, doc, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	mr.FastForward(time.Minute + time.Second)
	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, homeapi.ErrCacheMiss)
}

var _ homeapi.Store = (*VenueCache)(nil)
