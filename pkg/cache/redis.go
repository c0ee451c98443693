// Package cache holds the Redis connection shared by the session store and
// the work item read cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient owns the go-redis connection pool.
type RedisClient struct {
	client *redis.Client
}

// Option adjusts the parsed redis.Options before the client is built.
type Option func(*redis.Options)

// WithClientName sets the name shown by CLIENT LIST.
func WithClientName(name string) Option {
	return func(o *redis.Options) { o.ClientName = name }
}

// WithPoolSize overrides the pool size.
func WithPoolSize(n int) Option {
	return func(o *redis.Options) { o.PoolSize = n }
}

const connectTimeout = 2 * time.Second

// NewRedisClient connects to url and pings it. Pool and timeout settings given
// as URL query parameters (pool_size, dial_timeout, ...) win over the
// defaults below; opts win over both.
func NewRedisClient(ctx context.Context, url string, opts ...Option) (*RedisClient, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	applyDefaults(o)
	for _, opt := range opts {
		opt(o)
	}

	rdb := redis.NewClient(o)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", o.Addr, err)
	}

	return &RedisClient{client: rdb}, nil
}

func applyDefaults(o *redis.Options) {
	setIfZero(&o.PoolSize, 10)
	setIfZero(&o.MinIdleConns, 2)
	setIfZero(&o.MaxRetries, 3)
	setIfZero(&o.DialTimeout, 5*time.Second)
	setIfZero(&o.ReadTimeout, 3*time.Second)
	setIfZero(&o.WriteTimeout, 3*time.Second)
	setIfZero(&o.PoolTimeout, 4*time.Second)
}

func setIfZero[T comparable](field *T, v T) {
	var zero T
	if *field == zero {
		*field = v
	}
}

// Ping reports whether Redis answers. Used by /health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the pool to the session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
