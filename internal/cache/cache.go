// Package cache keeps computed per-career views in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// View names a cached per-career payload.
type View string

const (
	ViewOverview View = "overview"
	ViewFinances View = "finances"
)

// Views lists every cached view, so a write can drop all of them.
var Views = []View{ViewOverview, ViewFinances}

// Cache is a read-through cache of career views. A nil *Cache is valid and
// caches nothing, so the service keeps working without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect parses addr (host:port or a redis:// URL) and pings the server.
func Connect(ctx context.Context, addr string, ttl time.Duration) (*Cache, error) {
	url := addr
	if !strings.Contains(url, "://") {
		url = "redis://" + url
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return New(client, ttl), nil
}

// New wraps an existing client.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key is the Redis key of a career view.
func Key(careerID string, view View) string {
	return "career:" + careerID + ":" + string(view)
}

// Get decodes the cached view into dst and reports whether it was found.
func (c *Cache) Get(ctx context.Context, careerID string, view View, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}
	cached, err := c.client.Get(ctx, Key(careerID, view)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cached, dst); err != nil {
		return false, fmt.Errorf("decoding cached %s: %w", view, err)
	}
	return true, nil
}

// Set stores v for the configured TTL.
func (c *Cache) Set(ctx context.Context, careerID string, view View, v any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", view, err)
	}
	return c.client.SetEx(ctx, Key(careerID, view), data, c.ttl).Err()
}

// Invalidate drops every cached view of the career.
func (c *Cache) Invalidate(ctx context.Context, careerID string) error {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(Views))
	for _, v := range Views {
		keys = append(keys, Key(careerID, v))
	}
	return c.client.Del(ctx, keys...).Err()
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
