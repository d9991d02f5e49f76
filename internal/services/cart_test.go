package services_test

import (
	"context"
	"database/sql"
	"testing"

	appErrors "github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/repositories/mocks"
	"github.com/mkravchuk/bookshop-platform/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCartServiceTest() (services.CartService, *mocks.CartRepository, *mocks.BookRepository) {
	mockCartRepo := new(mocks.CartRepository)
	mockBookRepo := new(mocks.BookRepository)
	cartService := services.NewCartService(mockCartRepo, mockBookRepo)

	return cartService, mockCartRepo, mockBookRepo
}

func TestAddItem(t *testing.T) {
	t.Run("Success - Add Book To Cart", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockBookRepo := setupCartServiceTest()
		ctx := context.Background()
		userID := int64(7)

		emptyCart := &models.Cart{ID: 3, UserID: userID}
		filledCart := &models.Cart{
			ID:     3,
			UserID: userID,
			Items: []models.CartItem{
				{ID: 1, CartID: 3, BookID: 10, BookTitle: "The Trial", Quantity: 2,
					UnitPrice: decimal.RequireFromString("12.99")},
			},
		}

		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(emptyCart, nil).Once()
		mockBookRepo.On("GetBookByID", ctx, int64(10)).Return(&models.Book{ID: 10}, nil).Once()
		mockCartRepo.On("AddItem", ctx, int64(3), int64(10), 2).Return(nil).Once()
		mockCartRepo.On("GetCartByUserID", ctx, userID).Return(filledCart, nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddCartItemRequest{BookID: 10, Quantity: 2})

		// Assert
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, "The Trial", cart.Items[0].BookTitle)

		mockCartRepo.AssertExpectations(t)
		mockBookRepo.AssertExpectations(t)
	})

	t.Run("Failure - Book Not Found", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, mockBookRepo := setupCartServiceTest()
		ctx := context.Background()

		mockCartRepo.On("GetCartByUserID", ctx, int64(7)).Return(&models.Cart{ID: 3, UserID: 7}, nil).Once()
		mockBookRepo.On("GetBookByID", ctx, int64(999)).Return(nil, sql.ErrNoRows).Once()

		// Act
		cart, err := cartService.AddItem(ctx, 7, &models.AddCartItemRequest{BookID: 999, Quantity: 1})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Can't find book with id 999", appErr.Message)

		mockCartRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("Failure - Item Not Found", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _ := setupCartServiceTest()
		ctx := context.Background()

		mockCartRepo.On("GetCartByUserID", ctx, int64(7)).Return(&models.Cart{ID: 3, UserID: 7}, nil).Once()
		mockCartRepo.On("UpdateItemQuantity", ctx, int64(3), int64(55), 4).Return(sql.ErrNoRows).Once()

		// Act
		cart, err := cartService.UpdateItem(ctx, 7, 55, &models.UpdateCartItemRequest{Quantity: 4})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "No cart item with id 55", appErr.Message)

		mockCartRepo.AssertExpectations(t)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("Success - Remove Item", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _ := setupCartServiceTest()
		ctx := context.Background()

		cartBefore := &models.Cart{
			ID:     3,
			UserID: 7,
			Items: []models.CartItem{
				{ID: 1, CartID: 3, BookID: 10, Quantity: 1, UnitPrice: decimal.RequireFromString("9.99")},
			},
		}
		cartAfter := &models.Cart{ID: 3, UserID: 7}

		mockCartRepo.On("GetCartByUserID", ctx, int64(7)).Return(cartBefore, nil).Once()
		mockCartRepo.On("RemoveItem", ctx, int64(3), int64(1)).Return(nil).Once()
		mockCartRepo.On("GetCartByUserID", ctx, int64(7)).Return(cartAfter, nil).Once()

		// Act
		cart, err := cartService.RemoveItem(ctx, 7, 1)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, cart.Items)

		mockCartRepo.AssertExpectations(t)
	})
}

func TestGetCart(t *testing.T) {
	t.Run("Failure - No Cart For User", func(t *testing.T) {
		// Arrange
		cartService, mockCartRepo, _ := setupCartServiceTest()
		ctx := context.Background()

		mockCartRepo.On("GetCartByUserID", ctx, int64(12)).Return(nil, sql.ErrNoRows).Once()

		// Act
		cart, err := cartService.GetCart(ctx, 12)

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, "No shopping cart for user id 12", appErr.Message)

		mockCartRepo.AssertExpectations(t)
	})
}
