package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/cache"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/config"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTTL = 10 * time.Minute

var roundWidget = models.Item{ID: 1, Name: "Round Widget", Price: decimal.RequireFromString("2.99"), Description: "A widget that is round"}

func newMockedCache(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	return cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: defaultTTL}), mock
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

func TestRedisCache_ItemRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	itemCache := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: defaultTTL})
	key := cache.ItemKey(roundWidget.ID)

	require.NoError(t, itemCache.Set(t.Context(), key, &roundWidget, 0))
	assert.Equal(t, defaultTTL, server.TTL(key))

	var got models.Item
	found, err := itemCache.Get(t.Context(), key, &got)

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, roundWidget.Name, got.Name)
	assert.True(t, roundWidget.Price.Equal(got.Price), "price %s should survive the round trip", got.Price)

	require.NoError(t, itemCache.Delete(t.Context(), key))

	found, err = itemCache.Get(t.Context(), key, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Get(t *testing.T) {
	key := cache.ItemKey(roundWidget.ID)
	redisErr := errors.New("redis connection error")

	t.Run("Hit decodes the item", func(t *testing.T) {
		itemCache, mock := newMockedCache(t)
		mock.ExpectGet(key).SetVal(string(mustJSON(t, roundWidget)))

		var got models.Item
		found, err := itemCache.Get(t.Context(), key, &got)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, roundWidget.ID, got.ID)
		assert.True(t, roundWidget.Price.Equal(got.Price))
	})

	t.Run("Miss is not an error", func(t *testing.T) {
		itemCache, mock := newMockedCache(t)
		mock.ExpectGet(key).SetErr(redis.Nil)

		var got models.Item
		found, err := itemCache.Get(t.Context(), key, &got)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, got.ID)
	})

	t.Run("Redis failure is wrapped", func(t *testing.T) {
		itemCache, mock := newMockedCache(t)
		mock.ExpectGet(key).SetErr(redisErr)

		var got models.Item
		found, err := itemCache.Get(t.Context(), key, &got)

		assert.False(t, found)
		require.ErrorIs(t, err, redisErr)
		assert.Contains(t, err.Error(), "failed to get key item:1 from redis")
	})

	t.Run("Corrupt payload", func(t *testing.T) {
		itemCache, mock := newMockedCache(t)
		mock.ExpectGet(key).SetVal(`{"id": "one", "name": "Round Widget"}`)

		var got models.Item
		found, err := itemCache.Get(t.Context(), key, &got)

		assert.False(t, found)

		var typeErr *json.UnmarshalTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Contains(t, err.Error(), "failed to unmarshal cache data for key item:1")
	})
}

func TestRedisCache_Set(t *testing.T) {
	key := cache.ItemKey(roundWidget.ID)

	tests := []struct {
		name        string
		ttl         time.Duration
		expectedTTL time.Duration
	}{
		{"Explicit TTL", 5 * time.Minute, 5 * time.Minute},
		{"Zero falls back to the default", 0, defaultTTL},
		{"Negative falls back to the default", -time.Second, defaultTTL},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			itemCache, mock := newMockedCache(t)
			mock.ExpectSet(key, mustJSON(t, &roundWidget), tc.expectedTTL).SetVal("OK")

			require.NoError(t, itemCache.Set(t.Context(), key, &roundWidget, tc.ttl))
		})
	}

	t.Run("Unencodable value", func(t *testing.T) {
		itemCache, _ := newMockedCache(t)

		err := itemCache.Set(t.Context(), key, make(chan int), time.Minute)

		var unsupported *json.UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
		assert.Contains(t, err.Error(), "failed to marshal value for key item:1")
	})

	t.Run("Redis failure is wrapped", func(t *testing.T) {
		itemCache, mock := newMockedCache(t)
		redisErr := errors.New("redis SET failed")
		mock.ExpectSet(key, mustJSON(t, &roundWidget), time.Minute).SetErr(redisErr)

		err := itemCache.Set(t.Context(), key, &roundWidget, time.Minute)

		require.ErrorIs(t, err, redisErr)
		assert.Contains(t, err.Error(), "failed to set key item:1 in redis")
	})
}

func TestRedisCache_Delete(t *testing.T) {
	key := cache.ItemKey(roundWidget.ID)

	t.Run("Removes the key", func(t *testing.T) {
		itemCache, mock := newMockedCache(t)
		mock.ExpectDel(key).SetVal(1)

		require.NoError(t, itemCache.Delete(t.Context(), key))
	})

	t.Run("Redis failure is wrapped", func(t *testing.T) {
		itemCache, mock := newMockedCache(t)
		redisErr := errors.New("redis DEL failed")
		mock.ExpectDel(key).SetErr(redisErr)

		err := itemCache.Delete(t.Context(), key)

		require.ErrorIs(t, err, redisErr)
		assert.Contains(t, err.Error(), "failed to delete key item:1 from redis")
	})
}

func TestRedisCache_Close(t *testing.T) {
	itemCache, _ := newMockedCache(t)

	assert.NoError(t, itemCache.Close())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "item:42", cache.Key("item", "42"))
	assert.Equal(t, "prefix:", cache.Key("prefix", ""))
	assert.Equal(t, "item", cache.ItemKeyPrefix)
	assert.Equal(t, "item:7", cache.ItemKey(7))
}
