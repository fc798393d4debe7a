package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// DialRedis connects to addr and fails if the server does not answer a ping.
func DialRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       0,
		PoolSize: 20,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedis(client, ttl), nil
}

func (r *Redis) Get(ctx context.Context, table string, dst any) (bool, error) {
	val, err := r.client.Get(ctx, key(table)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Version(ctx context.Context, table string) (int64, error) {
	return readVersion(ctx, r.client, table)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, c getter, table string) (int64, error) {
	v, err := c.Get(ctx, versionKey(table)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Set writes under WATCH on the version key, so an Invalidate that lands
// between the version check and the write aborts the transaction.
func (r *Redis) Set(ctx context.Context, table string, version int64, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readVersion(ctx, tx, table)
		if err != nil {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key(table), payload, r.ttl)
			return nil
		})
		return err
	}, versionKey(table))
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (r *Redis) Invalidate(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tables))
	for _, t := range tables {
		keys = append(keys, key(t))
	}
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, keys...)
		for _, t := range tables {
			p.Incr(ctx, versionKey(t))
		}
		return nil
	})
	return err
}

func (r *Redis) Close() error { return r.client.Close() }
