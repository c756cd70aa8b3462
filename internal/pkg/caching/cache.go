package caching

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

type ReadOnlyCache interface {
	Get(ctx context.Context, key string, target any) error
}

type Cache interface {
	ReadOnlyCache
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// UseCacheWithRO implements cache-aside with split handles: reads go to the
// replica-backed cache, fills go to the writable one. A miss falls through to
// the callback and the result is stored fire-and-forget.
func UseCacheWithRO[T any](ctx context.Context, ro ReadOnlyCache, rw Cache, key string, ttl time.Duration, callback func() (T, error)) (T, error) {
	var v T
	err := ro.Get(ctx, key, &v)
	if !errors.Is(err, cache.ErrCacheMiss) {
		return v, err
	}

	v, err = callback()
	if err != nil {
		return v, err
	}

	//nolint:errcheck
	rw.Set(ctx, key, v, ttl)
	return v, nil
}

type CacheRedis struct {
	instance *cache.Cache
}

func (c *CacheRedis) Get(ctx context.Context, key string, target any) error {
	return c.instance.Get(ctx, key, target)
}

func (c *CacheRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.instance.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		TTL:   ttl,
	})
}

func (c *CacheRedis) Delete(ctx context.Context, key string) error {
	return c.instance.Delete(ctx, key)
}

func NewCacheRedis(client redis.UniversalClient, withLocalCache bool) (*CacheRedis, error) {
	var localCache cache.LocalCache
	if withLocalCache {
		localCache = cache.NewTinyLFU(10000, time.Minute)
	}
	return &CacheRedis{cache.New(&cache.Options{
		Redis:      client,
		LocalCache: localCache,
	})}, nil
}

// DeleteKeys drops every key matching pattern. Invalidation for the scoped
// caches (hotel:<id>:*) after a rule change; per-key deletes stay on
// Cache.Delete.
func DeleteKeys(ctx context.Context, client redis.UniversalClient, pattern string) error {
	if clusterClient, ok := client.(*redis.ClusterClient); ok {
		return clusterClient.ForEachMaster(ctx, func(ctx context.Context, c *redis.Client) error {
			return sweepKeys(ctx, c, pattern)
		})
	}
	return sweepKeys(ctx, client, pattern)
}

func sweepKeys(ctx context.Context, client redis.UniversalClient, pattern string) error {
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Println("caching: delete failed:", "key:", iter.Val(), "err:", err)
		}
	}
	return iter.Err()
}
