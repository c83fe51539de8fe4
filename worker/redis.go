package worker

import (
	"context"

	"experimentallabor.de/gertag/redis"
	"experimentallabor.de/gertag/types"
)

type cacheTransactions interface {
	lock(ctx context.Context, key string) (redis.ReleaseLock, error)
	get(ctx context.Context, key string) ([]types.TaggedToken, bool, error)
	set(ctx context.Context, key string, tagged []types.TaggedToken) error
	close()
}

type redisClientWrapper struct {
	client *redis.Client
}

func (wrapper *redisClientWrapper) close() {
	_ = wrapper.client.Close()
}

func (wrapper *redisClientWrapper) lock(ctx context.Context, key string) (redis.ReleaseLock, error) {
	return wrapper.client.Lock(ctx, key)
}

func (wrapper *redisClientWrapper) get(ctx context.Context, key string) ([]types.TaggedToken, bool, error) {
	return wrapper.client.Get(ctx, key)
}

func (wrapper *redisClientWrapper) set(ctx context.Context, key string, tagged []types.TaggedToken) error {
	return wrapper.client.Set(ctx, key, tagged)
}

// noCache is used when caching is switched off.
type noCache struct{}

func (noCache) close() {}

func (noCache) lock(context.Context, string) (redis.ReleaseLock, error) {
	return func() error { return nil }, nil
}

func (noCache) get(context.Context, string) ([]types.TaggedToken, bool, error) {
	return nil, false, nil
}

func (noCache) set(context.Context, string, []types.TaggedToken) error {
	return nil
}
