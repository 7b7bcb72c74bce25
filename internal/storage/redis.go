package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const backendRedis = "redis"

type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

// RedisKV stores every key as a field of one hash, pomobubby:<namespace>.
type RedisKV struct {
	client *redis.Client
	hash   string
}

func OpenRedis(ctx context.Context, opts RedisOptions) (*RedisKV, error) {
	if opts.Addr == "" {
		return nil, wrapErr(backendRedis, "open", "", errors.New("empty address"))
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "default"
	}
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, wrapErr(backendRedis, "open", "", fmt.Errorf("connect to %s: %w", opts.Addr, err))
	}
	return &RedisKV{client: client, hash: "pomobubby:" + namespace}, nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.hash, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, wrapErr(backendRedis, "get", key, err)
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return wrapErr(backendRedis, "set", key, r.client.HSet(ctx, r.hash, key, value).Err())
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	n, err := r.client.HDel(ctx, r.hash, key).Result()
	if err != nil {
		return wrapErr(backendRedis, "delete", key, err)
	}
	if n == 0 {
		return wrapErr(backendRedis, "delete", key, ErrNotFound)
	}
	return nil
}
