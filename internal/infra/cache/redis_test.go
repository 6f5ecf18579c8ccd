package cache_test

import (
	"context"
	"errors"
	"time"
	"vehicle-bridge/internal/infra/cache"
	mockcache "vehicle-bridge/test/unit/doubles/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("RedisCache", func() {
	var (
		redisCache      *cache.RedisCache
		mockCacheClient *mockcache.MockCacheClient
		ctrl            *gomock.Controller
		ctx             context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		mockCacheClient = mockcache.NewMockCacheClient(ctrl)
		redisCache = cache.NewRedisCacheWithClient(mockCacheClient, "vb:")
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.It("prefixes keys on set", func() {
		status := redis.NewStatusCmd(ctx)
		status.SetVal("OK")
		mockCacheClient.EXPECT().
			Set(gomock.Any(), "vb:vehicle-1", []byte("snapshot"), time.Minute).
			Return(status)

		gomega.Expect(redisCache.Set(ctx, "vehicle-1", []byte("snapshot"), time.Minute)).To(gomega.Succeed())
	})

	ginkgo.It("returns the stored bytes", func() {
		cmd := redis.NewStringCmd(ctx, "get", "vb:vehicle-1")
		cmd.SetVal("snapshot")
		mockCacheClient.EXPECT().Get(gomock.Any(), "vb:vehicle-1").Return(cmd)

		value, err := redisCache.Get(ctx, "vehicle-1")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(value).To(gomega.Equal([]byte("snapshot")))
	})

	ginkgo.It("maps redis.Nil to a cache miss", func() {
		cmd := redis.NewStringCmd(ctx, "get", "vb:vehicle-1")
		cmd.SetErr(redis.Nil)
		mockCacheClient.EXPECT().Get(gomock.Any(), "vb:vehicle-1").Return(cmd)

		_, err := redisCache.Get(ctx, "vehicle-1")
		gomega.Expect(err).To(gomega.MatchError(cache.ErrCacheMiss))
	})

	ginkgo.It("wraps other redis errors", func() {
		connErr := errors.New("connection refused")
		cmd := redis.NewStringCmd(ctx, "get", "vb:vehicle-1")
		cmd.SetErr(connErr)
		mockCacheClient.EXPECT().Get(gomock.Any(), "vb:vehicle-1").Return(cmd)

		_, err := redisCache.Get(ctx, "vehicle-1")
		gomega.Expect(err).To(gomega.MatchError(connErr))
		gomega.Expect(err).NotTo(gomega.MatchError(cache.ErrCacheMiss))
	})

	ginkgo.It("deletes the prefixed key", func() {
		cmd := redis.NewIntCmd(ctx)
		cmd.SetVal(1)
		mockCacheClient.EXPECT().Del(gomock.Any(), "vb:vehicle-1").Return(cmd)

		gomega.Expect(redisCache.Delete(ctx, "vehicle-1")).To(gomega.Succeed())
	})

	ginkgo.It("loads and stores a missing value", func() {
		miss := redis.NewStringCmd(ctx, "get", "vb:vehicle-1")
		miss.SetErr(redis.Nil)
		status := redis.NewStatusCmd(ctx)
		status.SetVal("OK")

		mockCacheClient.EXPECT().Get(gomock.Any(), "vb:vehicle-1").Return(miss).Times(2)
		mockCacheClient.EXPECT().Set(gomock.Any(), "vb:vehicle-1", []byte("loaded"), time.Second).Return(status)

		value, err := redisCache.GetOrLoad(ctx, "vehicle-1", time.Second, func(context.Context) ([]byte, error) {
			return []byte("loaded"), nil
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(value).To(gomega.Equal([]byte("loaded")))
	})
})
