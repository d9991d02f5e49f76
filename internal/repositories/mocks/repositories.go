// Package mocks provides hand-written testify mocks for the repository
// interfaces.
package mocks

import (
	"context"

	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUserWithCart(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryRepository) ListCategories(ctx context.Context, page, pageSize int) ([]models.Category, int, error) {
	args := m.Called(ctx, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Category), args.Int(1), args.Error(2)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type BookRepository struct {
	mock.Mock
}

func (m *BookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)

	return args.Error(0)
}

func (m *BookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookRepository) ListBooks(ctx context.Context, page, pageSize int) ([]models.Book, int, error) {
	args := m.Called(ctx, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Book), args.Int(1), args.Error(2)
}

func (m *BookRepository) ListBooksByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Book, int, error) {
	args := m.Called(ctx, categoryID, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Book), args.Int(1), args.Error(2)
}

func (m *BookRepository) SearchBooks(ctx context.Context, params models.BookSearchParams, page, pageSize int) ([]models.Book, int, error) {
	args := m.Called(ctx, params, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Book), args.Int(1), args.Error(2)
}

func (m *BookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)

	return args.Error(0)
}

func (m *BookRepository) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartRepository) AddItem(ctx context.Context, cartID, bookID int64, quantity int) error {
	args := m.Called(ctx, cartID, bookID, quantity)

	return args.Error(0)
}

func (m *CartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	args := m.Called(ctx, cartID, itemID, quantity)

	return args.Error(0)
}

func (m *CartRepository) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	args := m.Called(ctx, cartID, itemID)

	return args.Error(0)
}

func (m *CartRepository) ClearCart(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrderFromCart(ctx context.Context, order *models.Order, cartID int64) error {
	args := m.Called(ctx, order, cartID)

	return args.Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Order, int, error) {
	args := m.Called(ctx, userID, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Order), args.Int(1), args.Error(2)
}

func (m *OrderRepository) OrderExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *OrderRepository) ListItemsByOrderID(ctx context.Context, orderID int64, page, pageSize int) ([]models.OrderItem, int, error) {
	args := m.Called(ctx, orderID, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.OrderItem), args.Int(1), args.Error(2)
}

func (m *OrderRepository) GetItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error) {
	args := m.Called(ctx, orderID, itemID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderItem), args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
