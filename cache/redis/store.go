package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/adeilh/docserve/cache"
)

// Store implements cache.Store on a pooled go-redis client.
type Store struct {
	opts Options
	rdb  *goredis.Client
}

var _ cache.Store = (*Store)(nil)

// NewStore builds a Redis-backed cache store. No connection is made until the
// first command.
func NewStore(opts Options) *Store {
	cfg := opts.withDefaults()
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})
	return &Store{opts: cfg, rdb: rdb}
}

// Addr reports the server address the store talks to.
func (s *Store) Addr() string { return s.opts.Addr }

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, cache.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Set stores value under key. A non-positive ttl keeps the key until deleted.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.rdb.Del(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return cache.ErrNotFound
	}
	return nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
