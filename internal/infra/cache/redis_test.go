package cache_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"shipops-server/internal/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
)

// fakeCacheClient is an in-memory stand-in for the redis client, storing the
// encoded bytes the cache hands it, with TTL support.
type fakeCacheClient struct {
	mu   sync.Mutex
	data map[string]fakeEntry
}

type fakeEntry struct {
	value   []byte
	expires time.Time
}

func newFakeCacheClient() *fakeCacheClient {
	return &fakeCacheClient{data: make(map[string]fakeEntry)}
}

func (f *fakeCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	cmd := redis.NewStringCmd(ctx, "get", key)
	entry, ok := f.data[key]
	if !ok || (!entry.expires.IsZero() && time.Now().After(entry.expires)) {
		delete(f.data, key)
		cmd.SetErr(redis.Nil)
		return cmd
	}

	cmd.SetVal(string(entry.value))
	return cmd
}

func (f *fakeCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := fakeEntry{value: value.([]byte)}
	if expiration > 0 {
		entry.expires = time.Now().Add(expiration)
	}
	f.data[key] = entry

	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeCacheClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}

	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(removed)
	return cmd
}

func (f *fakeCacheClient) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	cmd := redis.NewStringSliceCmd(ctx, "keys", pattern)
	cmd.SetVal(keys)
	return cmd
}

func (f *fakeCacheClient) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	cmd.SetVal("PONG")
	return cmd
}

var _ = ginkgo.Describe("RedisCache", func() {
	var (
		redisCache *cache.RedisCache
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		redisCache = cache.NewRedisCacheWithClient(newFakeCacheClient(), nil)
		ctx = context.Background()
	})

	ginkgo.Context("SetAndGet", func() {
		ginkgo.It("round-trips a value through msgpack", func() {
			success := redisCache.Set(ctx, "test_key", "test_value", 0)
			gomega.Expect(success).To(gomega.BeTrue())

			retrieved, found := redisCache.Get(ctx, "test_key")
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(retrieved).To(gomega.Equal("test_value"))
		})

		ginkgo.It("misses on unknown keys", func() {
			_, found := redisCache.Get(ctx, "missing")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("SetWithTTL", func() {
		ginkgo.It("expires the value after the TTL", func() {
			success := redisCache.Set(ctx, "ttl_key", "ttl_value", 50*time.Millisecond)
			gomega.Expect(success).To(gomega.BeTrue())

			_, found := redisCache.Get(ctx, "ttl_key")
			gomega.Expect(found).To(gomega.BeTrue())

			time.Sleep(100 * time.Millisecond)

			_, found = redisCache.Get(ctx, "ttl_key")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Delete", func() {
		ginkgo.It("removes the value", func() {
			redisCache.Set(ctx, "delete_key", "delete_value", 0)
			redisCache.Delete(ctx, "delete_key")

			_, found := redisCache.Get(ctx, "delete_key")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("GetOrSet", func() {
		ginkgo.It("loads once and serves from cache afterwards", func() {
			calls := 0
			loader := func() (any, error) {
				calls++
				return "loaded", nil
			}

			value, err := redisCache.GetOrSet(ctx, "lazy_key", 0, loader)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(value).To(gomega.Equal("loaded"))

			value, err = redisCache.GetOrSet(ctx, "lazy_key", 0, loader)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(value).To(gomega.Equal("loaded"))
			gomega.Expect(calls).To(gomega.Equal(1))
		})
	})

	ginkgo.Context("Keys", func() {
		ginkgo.It("matches a prefix pattern", func() {
			redisCache.Set(ctx, "doc:one", "a", 0)
			redisCache.Set(ctx, "doc:two", "b", 0)
			redisCache.Set(ctx, "other", "c", 0)

			keys, err := redisCache.Keys(ctx, "doc:*")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(keys).To(gomega.ConsistOf("doc:one", "doc:two"))
		})
	})
})
