package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
)

// KV persists carts as plain string values under CartKey. Every write refreshes the TTL, so
// an abandoned cart expires ttl after its last change.
type KV struct {
	client *Client
	ttl    time.Duration
}

var _ storage.KV = (*KV)(nil)

func NewKV(client *Client, ttl time.Duration) *KV {
	if ttl < 0 {
		ttl = 0
	}
	return &KV{client: client, ttl: ttl}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := k.client.Get(ctx, k.client.CartKey(key))
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	return k.client.Set(ctx, k.client.CartKey(key), value, k.ttl)
}

func (k *KV) Delete(ctx context.Context, key string) error {
	return k.client.Del(ctx, k.client.CartKey(key))
}
