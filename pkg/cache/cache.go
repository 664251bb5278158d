// Package cache wraps a Redis client with the few operations chefmenu needs:
// JSON get/set and fixed-window counters for rate limiting.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a Redis-backed cache. A nil *Store behaves as an always-empty
// cache so callers need no availability checks.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New wraps an existing client. Keys are namespaced with prefix.
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

// Connect dials addr and verifies the connection with a ping.
// Returns an error so the caller can fall back to in-memory alternatives.
func Connect(ctx context.Context, addr, password, prefix string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb, prefix), nil
}

func (s *Store) key(k string) string { return s.prefix + k }

// Get unmarshals the value at key into dest. It reports a hit.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if s == nil {
		return false, nil
	}
	val, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value as JSON under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(key), data, ttl).Err()
}

// Forget removes keys.
func (s *Store) Forget(ctx context.Context, keys ...string) error {
	if s == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	return s.rdb.Del(ctx, full...).Err()
}

// Hit increments the counter at key and returns the new count. The first
// hit in a window starts the window's expiry.
func (s *Store) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	if s == nil {
		return 0, errors.New("cache: no redis connection")
	}
	k := s.key(key)
	n, err := s.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("cache: hit %s: %w", key, err)
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, k, window).Err(); err != nil {
			return n, fmt.Errorf("cache: expire %s: %w", key, err)
		}
	}
	return n, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.rdb.Close()
}
