package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "career:abc:overview", Key("abc", ViewOverview))
	assert.Equal(t, "career:abc:finances", Key("abc", ViewFinances))
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dst map[string]int
	found, err := c.Get(ctx, "abc", ViewOverview, &dst)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dst)

	assert.NoError(t, c.Set(ctx, "abc", ViewOverview, map[string]int{"a": 1}))
	assert.NoError(t, c.Invalidate(ctx, "abc"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := Connect(ctx, "127.0.0.1:1", time.Minute)
	assert.Error(t, err)
	assert.Nil(t, c)
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

type payload struct {
	Club  string         `json:"club"`
	Tiers map[string]int `json:"tiers"`
}

func TestCache_SetGetWithTTL(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	var miss payload
	found, err := c.Get(ctx, "abc", ViewOverview, &miss)
	require.NoError(t, err)
	assert.False(t, found)

	want := payload{Club: "Olympique Lyonnais", Tiers: map[string]int{"high_potential": 2}}
	require.NoError(t, c.Set(ctx, "abc", ViewOverview, want))
	assert.Equal(t, time.Minute, mr.TTL(Key("abc", ViewOverview)))

	var got payload
	found, err = c.Get(ctx, "abc", ViewOverview, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "abc", ViewOverview, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_InvalidateDropsEveryView(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	for _, v := range Views {
		require.NoError(t, c.Set(ctx, "abc", v, payload{Club: "a"}))
		require.NoError(t, c.Set(ctx, "other", v, payload{Club: "b"}))
	}

	require.NoError(t, c.Invalidate(ctx, "abc"))
	for _, v := range Views {
		assert.False(t, mr.Exists(Key("abc", v)), v)
		assert.True(t, mr.Exists(Key("other", v)), v)
	}
}

func TestCache_GetCorruptPayload(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(Key("abc", ViewFinances), "{not json"))

	var got payload
	found, err := c.Get(context.Background(), "abc", ViewFinances, &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestConnect_Reachable(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Connect(context.Background(), mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	assert.NoError(t, c.Ping(context.Background()))
}
