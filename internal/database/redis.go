package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"property-storefront/internal/storage"
)

// RedisPort stores each document as a plain string value.
type RedisPort struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr, password string, db int, prefix string) (*RedisPort, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisPort(client, prefix), nil
}

// NewRedisPort wraps an existing client. Keys are stored as prefix+key.
func NewRedisPort(client *redis.Client, prefix string) *RedisPort {
	return &RedisPort{client: client, prefix: prefix}
}

// Read returns the document stored under key.
func (r *RedisPort) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis read %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the document under key. Documents never expire.
func (r *RedisPort) Write(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis write %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *RedisPort) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (r *RedisPort) Close() error {
	return r.client.Close()
}
