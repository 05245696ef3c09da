package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

// セッションカートのスナップショットをRedisに置く。
// TTLはセッションの有効期限に合わせる。
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{client: client, ttl: ttl}
}

func (r *RedisCartRepository) Load(ctx context.Context, sessionID string) (model.CartSnapshot, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.CartSnapshot{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartSnapshot{}, fmt.Errorf("redis get failed: %w", err)
	}

	var snap model.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.CartSnapshot{}, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return snap, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, snap model.CartSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(snap.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
