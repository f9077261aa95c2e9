package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores JSON-serializable values with a TTL. Zero ttl means no expiration.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Config selects and tunes the backend.
type Config struct {
	Backend   string        `env:"CACHE_BACKEND" env-default:"memory" validate:"oneof=memory redis"`
	Addr      string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB" env-default:"0"`
	PoolSize  int           `env:"REDIS_POOL_SIZE" env-default:"20"`
	OpTimeout time.Duration `env:"REDIS_OP_TIMEOUT" env-default:"100ms"`
	KeyPrefix string        `env:"CACHE_KEY_PREFIX" env-default:"betpoints:"`
}

// New builds the backend named in cfg.
func New[V any](cfg Config) (Cache[V], error) {
	switch cfg.Backend {
	case RedisBackend:
		return NewRedisCache[V](&RedisOptions{
			Addr:      cfg.Addr,
			Password:  cfg.Password,
			DB:        cfg.DB,
			PoolSize:  cfg.PoolSize,
			OpTimeout: cfg.OpTimeout,
			KeyPrefix: cfg.KeyPrefix,
		}), nil
	case MemoryBackend, "":
		return NewMemoryCache[V](time.Minute), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
