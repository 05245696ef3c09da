package cache

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// miniredisに向けたリポジトリを作る
func setupTestRedis(t *testing.T) (*RedisCartRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCartRepository(client, 30*time.Minute), mr
}

func TestRedisCartRepository_SaveLoad(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	snap := model.CartSnapshot{
		SessionID: "sess-1",
		Items: []model.CartLineItem{
			{ProductID: "1", Name: "T-Shirt", Price: decimal.RequireFromString("29.99"), Quantity: 2, SelectedSize: "M"},
			{ProductID: "2", Name: "Hoodie", Price: decimal.RequireFromString("59.99"), Quantity: 1},
		},
		SavedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, r.Save(ctx, snap))
	assert.True(t, mr.Exists("cart:sess-1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("cart:sess-1"))

	got, err := r.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "M", got.Items[0].SelectedSize)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("29.99")))
	assert.Equal(t, "2", got.Items[1].ProductID)
	assert.True(t, snap.SavedAt.Equal(got.SavedAt))
}

func TestRedisCartRepository_Load_Miss(t *testing.T) {
	r, _ := setupTestRedis(t)

	_, err := r.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestRedisCartRepository_Load_InvalidJSON(t *testing.T) {
	r, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:bad", "{not json"))

	_, err := r.Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repo.ErrNotFound)
}

func TestRedisCartRepository_Delete(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, model.CartSnapshot{SessionID: "s"}))
	require.NoError(t, r.Delete(ctx, "s"))
	assert.False(t, mr.Exists("cart:s"))

	//無いキーの削除もエラーにしない
	require.NoError(t, r.Delete(ctx, "s"))
}

func TestRedisCartRepository_ConnectionError(t *testing.T) {
	r, mr := setupTestRedis(t)
	mr.Close()

	_, err := r.Load(context.Background(), "s")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repo.ErrNotFound)
}
