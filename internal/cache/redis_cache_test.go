package cache_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/mkravchuk/bookshop-platform/internal/cache"
	"github.com/mkravchuk/bookshop-platform/internal/config"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCacheTest(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: 10 * time.Minute})

	return c, mock
}

func TestCacheGet(t *testing.T) {
	t.Run("Success - Hit", func(t *testing.T) {
		c, mock := setupCacheTest(t)

		book := models.Book{ID: 10, Title: "The Trial", Price: decimal.RequireFromString("12.99")}
		data, err := json.Marshal(book)
		require.NoError(t, err)

		mock.ExpectGet("book:10").SetVal(string(data))

		var got models.Book
		found, err := c.Get(t.Context(), "book:10", &got)

		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "The Trial", got.Title)
		assert.True(t, got.Price.Equal(book.Price))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Miss Is Not An Error", func(t *testing.T) {
		c, mock := setupCacheTest(t)

		mock.ExpectGet("book:999").RedisNil()

		var got models.Book
		found, err := c.Get(t.Context(), "book:999", &got)

		assert.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCacheSet(t *testing.T) {
	t.Run("Success - Explicit TTL", func(t *testing.T) {
		c, mock := setupCacheTest(t)

		book := models.Book{ID: 10, Title: "The Trial"}
		data, err := json.Marshal(book)
		require.NoError(t, err)

		mock.ExpectSet("book:10", data, 5*time.Minute).SetVal("OK")

		assert.NoError(t, c.Set(t.Context(), "book:10", book, 5*time.Minute))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Zero TTL Falls Back To Default", func(t *testing.T) {
		c, mock := setupCacheTest(t)

		book := models.Book{ID: 10, Title: "The Trial"}
		data, err := json.Marshal(book)
		require.NoError(t, err)

		mock.ExpectSet("book:10", data, 10*time.Minute).SetVal("OK")

		assert.NoError(t, c.Set(t.Context(), "book:10", book, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCacheDelete(t *testing.T) {
	c, mock := setupCacheTest(t)

	mock.ExpectDel("book:10").SetVal(1)

	assert.NoError(t, c.Delete(t.Context(), "book:10"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
