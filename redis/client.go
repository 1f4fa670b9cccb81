// Package redis wraps the go-redis client with key prefixing, a default
// TTL, and JSON value helpers.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/earnbaseio/earnbase-common/config"
)

// Client wraps redis.Client with lifecycle management and JSON helpers.
type Client struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration
}

// Connect initializes the connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.RedisSettings, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DB = cfg.DB

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	logger.Info("Redis connection established",
		zap.Int("db", cfg.DB),
		zap.String("prefix", cfg.Prefix),
		zap.Duration("ttl", ttl),
	)

	return &Client{
		client: client,
		logger: logger,
		prefix: cfg.Prefix,
		ttl:    ttl,
	}, nil
}

// NewFromClient wraps an existing redis client; used by tests and by
// services that manage the connection themselves.
func NewFromClient(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Client{client: client, logger: logger, prefix: prefix, ttl: ttl}
}

// Client returns the underlying redis.Client for direct access.
func (c *Client) Client() *redis.Client { return c.client }

func (c *Client) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + key
}

// Set stores value as JSON under the prefixed key. A zero ttl selects the
// client default.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = c.ttl
	}

	if err := c.client.Set(ctx, c.key(key), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Get loads the JSON value under the prefixed key into dest. Missing keys
// report found=false without error.
func (c *Client) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("unmarshal value for %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the prefixed key and reports whether it existed.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	deleted, err := c.client.Del(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	return deleted > 0, nil
}

// Exists reports whether the prefixed key is present.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	return count > 0, nil
}

// HealthCheck performs a ping to verify connectivity.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close gracefully closes the connection pool.
func (c *Client) Close() error {
	c.logger.Info("Closing Redis connection")
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}

// Stats returns connection pool statistics for monitoring.
func (c *Client) Stats() *redis.PoolStats {
	return c.client.PoolStats()
}
