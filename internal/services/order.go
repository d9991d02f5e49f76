package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkravchuk/bookshop-platform/internal/api/middleware"
	appErrors "github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/repositories"
	"github.com/mkravchuk/bookshop-platform/pkg/sendgrid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID int64, req *models.PlaceOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*models.Order, error)
	ListOrders(ctx context.Context, userID int64, page, pageSize int) (*models.PaginatedResponse, error)
	GetItems(ctx context.Context, orderID int64, page, pageSize int) (*models.PaginatedResponse, error)
	GetItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID int64, statusName string) (*models.Order, error)
}

type orderService struct {
	repo     repositories.OrderRepository
	cartRepo repositories.CartRepository
	userRepo repositories.UserRepository
	email    sendgrid.EmailService
}

func NewOrderService(repo repositories.OrderRepository, cartRepo repositories.CartRepository,
	userRepo repositories.UserRepository, email sendgrid.EmailService) OrderService {
	return &orderService{
		repo:     repo,
		cartRepo: cartRepo,
		userRepo: userRepo,
		email:    email,
	}
}

// PlaceOrder turns the user's cart into a pending order. Each line freezes
// the book's unit price as it stands right now, so later catalog edits never
// change what the customer owes. The order rows land and the cart empties in
// a single transaction.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64, req *models.PlaceOrderRequest) (*models.Order, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.NotFoundError(fmt.Sprintf("No shopping cart for user id %d", userID)).WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.EmptyCartError(fmt.Sprintf("Shopping cart is empty for user id %d", userID))
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(cart.Items))

	for _, cartItem := range cart.Items {
		items = append(items, models.OrderItem{
			BookID:   cartItem.BookID,
			Quantity: cartItem.Quantity,
			Price:    cartItem.UnitPrice,
		})

		total = total.Add(cartItem.UnitPrice.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		Total:           total,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	}

	if err := s.repo.CreateOrderFromCart(ctx, order, cart.ID); err != nil {
		return nil, appErrors.DatabaseError("Failed to place order").WithError(err)
	}

	s.sendConfirmation(ctx, order)

	return order, nil
}

// sendConfirmation is best effort. The order is already committed, a mail
// failure must not surface to the caller.
func (s *orderService) sendConfirmation(ctx context.Context, order *models.Order) {
	logger := middleware.LoggerFromContext(ctx)

	user, err := s.userRepo.GetUserByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("Could not load user for order confirmation",
			slog.Int64("orderId", order.ID), slog.Any("error", err))
		return
	}

	subject := fmt.Sprintf("Order #%d confirmed", order.ID)
	body := fmt.Sprintf("Hi %s,\n\nYour order #%d for %s has been received and is now pending.\n",
		user.FirstName, order.ID, order.Total.StringFixed(2))

	if err := s.email.Send(ctx, user.Email, subject, body, ""); err != nil {
		logger.Warn("Order confirmation email failed",
			slog.Int64("orderId", order.ID), slog.Any("error", err))
	}
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, appErrors.NotFoundError(fmt.Sprintf("No order with id %d", orderID)).WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID int64, page, pageSize int) (*models.PaginatedResponse, error) {
	orders, total, err := s.repo.ListOrdersByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *orderService) GetItems(ctx context.Context, orderID int64, page, pageSize int) (*models.PaginatedResponse, error) {
	exists, err := s.repo.OrderExists(ctx, orderID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if !exists {
		return nil, appErrors.NotFoundError(fmt.Sprintf("No order with id %d", orderID))
	}

	items, total, err := s.repo.ListItemsByOrderID(ctx, orderID, page, pageSize)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch order items").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *orderService) GetItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error) {
	exists, err := s.repo.OrderExists(ctx, orderID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if !exists {
		return nil, appErrors.NotFoundError(fmt.Sprintf("No order with id %d", orderID))
	}

	item, err := s.repo.GetItem(ctx, orderID, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(
				fmt.Sprintf("No item with id %d in order with id %d", itemID, orderID)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order item").WithError(err)
	}

	return item, nil
}

// UpdateStatus rejects any name outside the status enumeration before
// touching the database.
func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, statusName string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(statusName)
	if err != nil {
		return nil, appErrors.InvalidStatusError(fmt.Sprintf("Invalid status: %s", statusName))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("No order with id %d", orderID)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	return s.GetOrder(ctx, orderID)
}
