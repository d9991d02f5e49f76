package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	cacheMocks "github.com/mkravchuk/bookshop-platform/internal/cache/mocks"
	appErrors "github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/repositories/mocks"
	"github.com/mkravchuk/bookshop-platform/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupBookServiceTest() (services.BookService, *mocks.BookRepository, *mocks.CategoryRepository, *cacheMocks.Cache) {
	mockBookRepo := new(mocks.BookRepository)
	mockCategoryRepo := new(mocks.CategoryRepository)
	mockCache := new(cacheMocks.Cache)
	bookService := services.NewBookService(mockBookRepo, mockCategoryRepo, mockCache, 10*time.Minute)

	return bookService, mockBookRepo, mockCategoryRepo, mockCache
}

func TestGetBookByID(t *testing.T) {
	t.Run("Success - Cache Miss Falls Through To Repo", func(t *testing.T) {
		// Arrange
		bookService, mockBookRepo, _, mockCache := setupBookServiceTest()
		ctx := context.Background()

		book := &models.Book{ID: 10, Title: "The Trial", Price: decimal.RequireFromString("12.99")}

		mockCache.On("Get", ctx, "book:10", mock.Anything).Return(false, nil).Once()
		mockBookRepo.On("GetBookByID", ctx, int64(10)).Return(book, nil).Once()
		mockCache.On("Set", ctx, "book:10", book, 10*time.Minute).Return(nil).Once()

		// Act
		got, err := bookService.GetBookByID(ctx, 10)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, book, got)

		mockCache.AssertExpectations(t)
		mockBookRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		bookService, mockBookRepo, _, mockCache := setupBookServiceTest()
		ctx := context.Background()

		mockCache.On("Get", ctx, "book:999", mock.Anything).Return(false, nil).Once()
		mockBookRepo.On("GetBookByID", ctx, int64(999)).Return(nil, sql.ErrNoRows).Once()

		// Act
		got, err := bookService.GetBookByID(ctx, 999)

		// Assert
		assert.Nil(t, got)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Can't find book with id 999", appErr.Message)
	})

	t.Run("Success - Cache Error Is Absorbed", func(t *testing.T) {
		// Arrange
		bookService, mockBookRepo, _, mockCache := setupBookServiceTest()
		ctx := context.Background()

		book := &models.Book{ID: 10, Title: "The Trial"}

		mockCache.On("Get", ctx, "book:10", mock.Anything).Return(false, assert.AnError).Once()
		mockBookRepo.On("GetBookByID", ctx, int64(10)).Return(book, nil).Once()
		mockCache.On("Set", ctx, "book:10", book, 10*time.Minute).Return(assert.AnError).Once()

		// Act
		got, err := bookService.GetBookByID(ctx, 10)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, book, got)
	})
}

func TestCreateBook(t *testing.T) {
	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		bookService, mockBookRepo, mockCategoryRepo, _ := setupBookServiceTest()
		ctx := context.Background()

		mockCategoryRepo.On("GetCategoryByID", ctx, int64(4)).Return(nil, sql.ErrNoRows).Once()

		req := &models.CreateBookRequest{
			Title:       "The Trial",
			Author:      "Franz Kafka",
			ISBN:        "9780805209990",
			Price:       decimal.RequireFromString("12.99"),
			CategoryIDs: []int64{4},
		}

		// Act
		book, err := bookService.CreateBook(ctx, req)

		// Assert
		assert.Nil(t, book)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, "No category with id 4", appErr.Message)

		mockBookRepo.AssertNotCalled(t, "CreateBook", mock.Anything, mock.Anything)
	})

	t.Run("Success - Sanitizes Description", func(t *testing.T) {
		// Arrange
		bookService, mockBookRepo, mockCategoryRepo, _ := setupBookServiceTest()
		ctx := context.Background()

		mockCategoryRepo.On("GetCategoryByID", ctx, int64(1)).Return(&models.Category{ID: 1}, nil).Once()
		mockBookRepo.On("CreateBook", ctx, mock.MatchedBy(func(b *models.Book) bool {
			return b.Description == "A novel."
		})).Return(nil).Once()

		req := &models.CreateBookRequest{
			Title:       "The Trial",
			Author:      "Franz Kafka",
			ISBN:        "9780805209990",
			Price:       decimal.RequireFromString("12.99"),
			Description: "<b>A novel.</b>",
			CategoryIDs: []int64{1},
		}

		// Act
		book, err := bookService.CreateBook(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "A novel.", book.Description)

		mockBookRepo.AssertExpectations(t)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Run("Success - Invalidates Cache", func(t *testing.T) {
		// Arrange
		bookService, mockBookRepo, _, mockCache := setupBookServiceTest()
		ctx := context.Background()

		mockBookRepo.On("DeleteBook", ctx, int64(10)).Return(nil).Once()
		mockCache.On("Delete", ctx, "book:10").Return(nil).Once()

		// Act
		err := bookService.DeleteBook(ctx, 10)

		// Assert
		assert.NoError(t, err)

		mockCache.AssertExpectations(t)
	})

	t.Run("Failure - Wrapped No Rows Still Maps To Not Found", func(t *testing.T) {
		// Arrange
		bookService, mockBookRepo, _, mockCache := setupBookServiceTest()
		ctx := context.Background()

		mockBookRepo.On("DeleteBook", ctx, int64(999)).
			Return(fmt.Errorf("failed to delete book: %w", sql.ErrNoRows)).Once()

		// Act
		err := bookService.DeleteBook(ctx, 999)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Can't find book with id 999", appErr.Message)

		mockCache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
