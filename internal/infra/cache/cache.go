package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache stores encoded values by key. Callers own the encoding.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, error)
}

// Loader produces the value of a missing key.
type Loader func(ctx context.Context) ([]byte, error)

type MemoryCacheConfig struct {
	MaxCost     int64
	NumCounters int64
	BufferItems int64
}

func DefaultMemoryCacheConfig() MemoryCacheConfig {
	return MemoryCacheConfig{
		MaxCost:     64 << 20,
		NumCounters: 1e5,
		BufferItems: 64,
	}
}

// MemoryCache is an in-process Cache on top of ristretto. The cost of an entry is its size.
type MemoryCache struct {
	store *ristretto.Cache
	group singleflight.Group
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache(config MemoryCacheConfig) (*MemoryCache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &MemoryCache{store: store}, nil
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, found := c.store.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

// Set waits for the write buffers to drain so that a following Get observes the value.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.store.SetWithTTL(key, value, int64(len(value)), ttl) {
		return errors.New("memory cache rejected entry")
	}
	c.store.Wait()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.Del(key)
	return nil
}

func (c *MemoryCache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, error) {
	return getOrLoad(ctx, c, &c.group, key, ttl, loader)
}

func (c *MemoryCache) Close() {
	c.store.Close()
}

// getOrLoad collapses concurrent loads of the same key into one.
func getOrLoad(ctx context.Context, c Cache, group *singleflight.Group, key string, ttl time.Duration, loader Loader) ([]byte, error) {
	if value, err := c.Get(ctx, key); err == nil {
		return value, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	value, err, _ := group.Do(key, func() (any, error) {
		if value, err := c.Get(ctx, key); err == nil {
			return value, nil
		}

		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		if err := c.Set(ctx, key, value, ttl); err != nil {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]byte), nil
}
