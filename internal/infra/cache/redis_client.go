package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=redis_client.go -destination=../../../test/unit/doubles/infra/cache/cache_client_mock.go -package=cache

// CacheClient is the subset of redis commands used by RedisCache.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, key string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// redisClient narrows the variadic Del of go-redis to a single key.
type redisClient struct {
	*redis.Client
}

func (c redisClient) Del(ctx context.Context, key string) *redis.IntCmd {
	return c.Client.Del(ctx, key)
}
