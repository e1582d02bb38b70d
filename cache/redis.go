package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

const redisPrefix = "tokentrip:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	b, err := r.client.WithContext(ctx).Get(redisPrefix + string(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get: unable to read %s: %w", key, err)
	}
	return b, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	if err := r.client.WithContext(ctx).Set(redisPrefix+string(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("set: unable to write %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, keys ...Key) error {
	ks := make([]string, len(keys))
	for i, k := range keys {
		ks[i] = redisPrefix + string(k)
	}
	if err := r.client.WithContext(ctx).Del(ks...).Err(); err != nil {
		return fmt.Errorf("delete: unable to delete %v: %w", keys, err)
	}
	return nil
}
