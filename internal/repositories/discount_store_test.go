package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/cache"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	repository "github.com/lucabianchi/pizza-storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountStore(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	key := "discount:" + userID.String()
	ttl := time.Hour

	dc := models.DiscountCode{Code: "MARG123ABC", DiscountPercentage: 15}
	data, err := json.Marshal(dc)
	require.NoError(t, err)

	t.Run("Success - Load Seeds Persisted Code", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := repository.NewDiscountStore(cache.NewRedisCache(client, ttl), userID, ttl)

		mock.ExpectGet(key).SetVal(string(data))

		// Act
		loaded, err := store.Load(ctx)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, dc, *loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Load With Nothing Persisted", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewDiscountStore(cache.NewRedisCache(client, ttl), userID, ttl)

		mock.ExpectGet(key).RedisNil()

		loaded, err := store.Load(ctx)

		require.NoError(t, err)
		assert.Nil(t, loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Save Persists Under User Key", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewDiscountStore(cache.NewRedisCache(client, ttl), userID, ttl)

		mock.ExpectSet(key, data, ttl).SetVal("OK")

		require.NoError(t, store.Save(ctx, dc))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Clear Deletes Key", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := repository.NewDiscountStore(cache.NewRedisCache(client, ttl), userID, ttl)

		mock.ExpectDel(key).SetVal(1)

		require.NoError(t, store.Clear(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
