package repositories_test

import (
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mkravchuk/bookshop-platform/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepoTest(t *testing.T) (repositories.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repositories.NewCartRepo(db), mock
}

func TestGetCartByUserID(t *testing.T) {
	t.Run("Success - Items Joined With Catalog", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id FROM shopping_carts WHERE user_id = $1`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(int64(3), int64(7)))

		itemRows := sqlmock.NewRows([]string{"id", "cart_id", "book_id", "title", "quantity", "price"}).
			AddRow(int64(1), int64(3), int64(10), "The Trial", 2, "12.99").
			AddRow(int64(2), int64(3), int64(11), "The Castle", 1, "7.99")

		mock.ExpectQuery(`SELECT ci.id, ci.cart_id, ci.book_id, b.title, ci.quantity, b.price\s+FROM cart_items ci\s+JOIN books b ON b.id = ci.book_id\s+WHERE ci.cart_id = \$1\s+ORDER BY ci.id`).
			WithArgs(int64(3)).
			WillReturnRows(itemRows)

		// Act
		cart, err := repo.GetCartByUserID(t.Context(), 7)

		// Assert
		assert.NoError(t, err)
		require.Len(t, cart.Items, 2)
		assert.Equal(t, "The Trial", cart.Items[0].BookTitle)
		assert.True(t, cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.99")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - No Cart", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id FROM shopping_carts WHERE user_id = $1`)).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		// Act
		cart, err := repo.GetCartByUserID(t.Context(), 99)

		// Assert
		assert.Nil(t, cart)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestAddItemUpsert(t *testing.T) {
	// Arrange
	repo, mock := setupCartRepoTest(t)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO cart_items(cart_id, book_id, quantity)
		VALUES($1, $2, $3)
		ON CONFLICT (cart_id, book_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`)).
		WithArgs(int64(3), int64(10), 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	// Act
	err := repo.AddItem(t.Context(), 3, 10, 2)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItemScopedToCart(t *testing.T) {
	// Arrange
	repo, mock := setupCartRepoTest(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`)).
		WithArgs(int64(5), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Act
	err := repo.RemoveItem(t.Context(), 3, 5)

	// Assert
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
