package repositories_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserRepoTest(t *testing.T) (repositories.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repositories.NewUserRepo(db), mock
}

func TestCreateUserWithCart(t *testing.T) {
	userInsertSQL := regexp.QuoteMeta(`
		INSERT INTO users(email, password, first_name, last_name, shipping_address, role, created_at)
		VALUES($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`)

	cartInsertSQL := regexp.QuoteMeta(`
		INSERT INTO shopping_carts(user_id, created_at)
		VALUES($1, NOW())`)

	newTestUser := func() *models.User {
		return &models.User{
			Email:     "new@example.com",
			Password:  "hashed",
			FirstName: "Ivan",
			LastName:  "Reader",
			Role:      models.RoleUser,
		}
	}

	t.Run("Success - User And Cart In One Tx", func(t *testing.T) {
		// Arrange
		repo, mock := setupUserRepoTest(t)
		user := newTestUser()

		mock.ExpectBegin()
		mock.ExpectQuery(userInsertSQL).
			WithArgs(user.Email, user.Password, user.FirstName, user.LastName,
				user.ShippingAddress, user.Role).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))
		mock.ExpectExec(cartInsertSQL).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		// Act
		err := repo.CreateUserWithCart(t.Context(), user)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Cart Insert Rolls The User Back", func(t *testing.T) {
		// Arrange
		repo, mock := setupUserRepoTest(t)
		user := newTestUser()

		mock.ExpectBegin()
		mock.ExpectQuery(userInsertSQL).
			WithArgs(user.Email, user.Password, user.FirstName, user.LastName,
				user.ShippingAddress, user.Role).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))
		mock.ExpectExec(cartInsertSQL).
			WithArgs(int64(7)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		// Act
		err := repo.CreateUserWithCart(t.Context(), user)

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create shopping cart")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - User Insert Rolls Back", func(t *testing.T) {
		// Arrange
		repo, mock := setupUserRepoTest(t)
		user := newTestUser()

		mock.ExpectBegin()
		mock.ExpectQuery(userInsertSQL).
			WithArgs(user.Email, user.Password, user.FirstName, user.LastName,
				user.ShippingAddress, user.Role).
			WillReturnError(errors.New("duplicate key value"))
		mock.ExpectRollback()

		// Act
		err := repo.CreateUserWithCart(t.Context(), user)

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert user")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
