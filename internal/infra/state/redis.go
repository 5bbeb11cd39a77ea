package state

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront-cart/internal/domain/cart"
	"storefront-cart/internal/infra"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores the cart state as a JSON value under a fixed key.
// A zero TTL keeps the state until it is overwritten.
type RedisRepository struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisRepository(addr, key string, ttl time.Duration, logger *slog.Logger) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    key,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisRepository) Load(ctx context.Context) (cart.State, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return cart.NewState(), false, nil
	}
	if err != nil {
		return cart.NewState(), false, infra.WrapInfraErr(r.logger, infra.KindStorageFailure, "failed to read state from redis", err)
	}

	var st cart.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		r.logger.Warn("discarding malformed persisted cart state", "key", r.key, "error", err)
		return cart.NewState(), false, nil
	}
	if st.Contents == nil {
		st.Contents = []cart.Line{}
	}
	return st, true, nil
}

func (r *RedisRepository) Save(ctx context.Context, st cart.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return infra.WrapInfraErr(r.logger, infra.KindStorageFailure, "failed to encode state", err)
	}
	if err := r.client.Set(ctx, r.key, raw, r.ttl).Err(); err != nil {
		return infra.WrapInfraErr(r.logger, infra.KindStorageFailure, "failed to write state to redis", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
