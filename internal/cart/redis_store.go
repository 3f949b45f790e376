package cart

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/invisimart/storefront-web/pkg/errors"
	pkgredis "github.com/invisimart/storefront-web/pkg/redis"
)

type redisCommands interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	CartKey(sessionID string) string
}

// RedisStore persists carts in Redis so a session survives a restart of this
// service. Selected with INVISIMART_CART_BACKEND=redis.
type RedisStore struct {
	client redisCommands
	ttl    time.Duration
}

func NewRedisStore(client *pkgredis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	key := s.client.CartKey(sessionID)
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if pkgredis.IsNil(err) {
			return New(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	// Idle refresh is best effort; a failed EXPIRE leaves the old deadline.
	_ = s.client.Expire(ctx, key, s.ttl)

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart record")
	}
	return NewFromItems(items), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	payload, err := json.Marshal(c.Items())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart record")
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}
