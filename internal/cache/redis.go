package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

// Redis is a Repository backed by a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects lazily to the server at addr. A zero ttl keeps keys
// without expiry.
func NewRedis(addr string, ttl time.Duration) *Redis {
	return NewRedisWithOptions(&redis.Options{Addr: addr}, ttl)
}

// NewRedisWithOptions creates a cache from explicit client options.
func NewRedisWithOptions(opts *redis.Options, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(opts),
		ttl:    ttl,
	}
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return eris.Wrap(r.client.Ping(ctx).Err(), "redis: ping")
}

// Get returns the cached value. A missing key is a miss; any other failure
// is returned.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "redis: get %s", key)
	}
	return val, true, nil
}

// Set stores value under key.
func (r *Redis) Set(ctx context.Context, key string, value string) error {
	return eris.Wrapf(r.client.Set(ctx, key, value, r.ttl).Err(), "redis: set %s", key)
}

// Close releases the client connections.
func (r *Redis) Close() error {
	return r.client.Close()
}
