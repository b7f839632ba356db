// Package redis wraps the shared cache client.
package redis

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// DB is a wrapper for go-redis
type DB struct {
	db *redis.Client
}

// NewDB creates a new DB instance
func NewDB(opt *redis.Options) *DB {
	rdb := redis.NewClient(opt)

	return &DB{
		db: rdb,
	}
}

// Get loads a raw cached value, ErrCacheMiss when absent.
func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := d.db.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, errors.Wrapf(err, "get `%s`", key)
	}

	return val, nil
}

// Set stores a raw value with a TTL.
func (d *DB) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := d.db.Set(ctx, key, val, ttl).Err(); err != nil {
		return errors.Wrapf(err, "set `%s`", key)
	}

	return nil
}

// Close shuts down the underlying connection pool.
func (d *DB) Close() error {
	return errors.WithStack(d.db.Close())
}
