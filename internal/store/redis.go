package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a KV backed by a Redis server. Every key is stored under prefix.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ KV = (*Redis)(nil)

// NewRedis connects to addr and pings it once.
func NewRedis(ctx context.Context, addr string, db int, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) key(k string) string { return r.prefix + k }

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ioErr("get", key, err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return ioErr("set", key, r.client.Set(ctx, r.key(key), value, 0).Err())
}

// SetMany uses MSET, which Redis applies atomically.
func (r *Redis) SetMany(ctx context.Context, pairs map[string]string) error {
	if len(pairs) == 0 {
		return nil
	}
	args := make([]any, 0, 2*len(pairs))
	for k, v := range pairs {
		args = append(args, r.key(k), v)
	}
	return ioErr("set many", "", r.client.MSet(ctx, args...).Err())
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return ioErr("remove", key, r.client.Del(ctx, r.key(key)).Err())
}

func (r *Redis) RemoveMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return ioErr("remove many", "", r.client.Del(ctx, full...).Err())
}

func (r *Redis) Close() error {
	return r.client.Close()
}
