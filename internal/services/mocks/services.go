// Package mocks provides hand-written testify mocks for the service
// interfaces.
package mocks

import (
	"context"

	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

type CategoryService struct {
	mock.Mock
}

func (m *CategoryService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryService) ListCategories(ctx context.Context, page, pageSize int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaginatedResponse), args.Error(1)
}

func (m *CategoryService) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type BookService struct {
	mock.Mock
}

func (m *BookService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookService) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookService) ListBooks(ctx context.Context, page, pageSize int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaginatedResponse), args.Error(1)
}

func (m *BookService) ListBooksByCategory(ctx context.Context, categoryID int64, page, pageSize int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, categoryID, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaginatedResponse), args.Error(1)
}

func (m *BookService) SearchBooks(ctx context.Context, params models.BookSearchParams, page, pageSize int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, params, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaginatedResponse), args.Error(1)
}

func (m *BookService) UpdateBook(ctx context.Context, id int64, req *models.CreateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, id, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookService) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID int64, req *models.AddCartItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) UpdateItem(ctx context.Context, userID, itemID int64, req *models.UpdateCartItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, itemID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, itemID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID, itemID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) ClearCart(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) PlaceOrder(ctx context.Context, userID int64, req *models.PlaceOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	args := m.Called(ctx, orderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, userID int64, page, pageSize int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, userID, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaginatedResponse), args.Error(1)
}

func (m *OrderService) GetItems(ctx context.Context, orderID int64, page, pageSize int) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, orderID, page, pageSize)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaginatedResponse), args.Error(1)
}

func (m *OrderService) GetItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error) {
	args := m.Called(ctx, orderID, itemID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderItem), args.Error(1)
}

func (m *OrderService) UpdateStatus(ctx context.Context, orderID int64, statusName string) (*models.Order, error) {
	args := m.Called(ctx, orderID, statusName)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}
