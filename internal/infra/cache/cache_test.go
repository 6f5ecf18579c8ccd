package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
	"vehicle-bridge/internal/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("MemoryCache", func() {
	var (
		memoryCache *cache.MemoryCache
		ctx         context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		memoryCache, err = cache.NewMemoryCache(cache.DefaultMemoryCacheConfig())
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		memoryCache.Close()
	})

	ginkgo.When("a value is set", func() {
		ginkgo.It("returns it on the next get", func() {
			gomega.Expect(memoryCache.Set(ctx, "vehicle-1", []byte("snapshot"), 0)).To(gomega.Succeed())

			value, err := memoryCache.Get(ctx, "vehicle-1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(value).To(gomega.Equal([]byte("snapshot")))
		})

		ginkgo.It("expires it after the ttl", func() {
			gomega.Expect(memoryCache.Set(ctx, "vehicle-1", []byte("snapshot"), 50*time.Millisecond)).To(gomega.Succeed())

			gomega.Eventually(func() error {
				_, err := memoryCache.Get(ctx, "vehicle-1")
				return err
			}, 3*time.Second, 20*time.Millisecond).Should(gomega.MatchError(cache.ErrCacheMiss))
		})

		ginkgo.It("forgets it after a delete", func() {
			gomega.Expect(memoryCache.Set(ctx, "vehicle-1", []byte("snapshot"), 0)).To(gomega.Succeed())
			gomega.Expect(memoryCache.Delete(ctx, "vehicle-1")).To(gomega.Succeed())

			_, err := memoryCache.Get(ctx, "vehicle-1")
			gomega.Expect(err).To(gomega.MatchError(cache.ErrCacheMiss))
		})
	})

	ginkgo.When("the key is unknown", func() {
		ginkgo.It("reports a miss", func() {
			_, err := memoryCache.Get(ctx, "missing")
			gomega.Expect(err).To(gomega.MatchError(cache.ErrCacheMiss))
		})
	})

	ginkgo.When("the context is cancelled", func() {
		ginkgo.It("does not touch the store", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			gomega.Expect(memoryCache.Set(cancelled, "vehicle-1", []byte("snapshot"), 0)).To(gomega.MatchError(context.Canceled))
		})
	})

	ginkgo.Context("GetOrLoad", func() {
		ginkgo.It("calls the loader once for concurrent misses", func() {
			var calls atomic.Int32
			release := make(chan struct{})
			loader := func(context.Context) ([]byte, error) {
				calls.Add(1)
				<-release
				return []byte("loaded"), nil
			}

			var wg sync.WaitGroup
			results := make([][]byte, 5)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					defer ginkgo.GinkgoRecover()
					value, err := memoryCache.GetOrLoad(ctx, "vehicle-1", time.Minute, loader)
					gomega.Expect(err).NotTo(gomega.HaveOccurred())
					results[i] = value
				}(i)
			}

			gomega.Eventually(calls.Load).Should(gomega.Equal(int32(1)))
			close(release)
			wg.Wait()

			gomega.Expect(calls.Load()).To(gomega.Equal(int32(1)))
			for _, value := range results {
				gomega.Expect(value).To(gomega.Equal([]byte("loaded")))
			}
		})

		ginkgo.It("returns a cached value without loading", func() {
			gomega.Expect(memoryCache.Set(ctx, "vehicle-1", []byte("cached"), 0)).To(gomega.Succeed())

			value, err := memoryCache.GetOrLoad(ctx, "vehicle-1", time.Minute, func(context.Context) ([]byte, error) {
				ginkgo.Fail("loader must not run")
				return nil, nil
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(value).To(gomega.Equal([]byte("cached")))
		})

		ginkgo.It("does not store a failed load", func() {
			loadErr := errors.New("engine unavailable")

			_, err := memoryCache.GetOrLoad(ctx, "vehicle-1", time.Minute, func(context.Context) ([]byte, error) {
				return nil, loadErr
			})
			gomega.Expect(err).To(gomega.MatchError(loadErr))

			_, err = memoryCache.Get(ctx, "vehicle-1")
			gomega.Expect(err).To(gomega.MatchError(cache.ErrCacheMiss))
		})
	})
})
