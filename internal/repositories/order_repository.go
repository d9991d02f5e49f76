package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
)

type OrderRepository interface {
	CreateOrderFromCart(ctx context.Context, order *models.Order, cartID int64) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Order, int, error)
	OrderExists(ctx context.Context, id int64) (bool, error)
	ListItemsByOrderID(ctx context.Context, orderID int64, page, pageSize int) ([]models.OrderItem, int, error)
	GetItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrderFromCart persists the order with its items and empties the cart
// in one transaction. Either everything lands or nothing does.
func (r *orderRepository) CreateOrderFromCart(ctx context.Context, order *models.Order, cartID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders(user_id, status, total, order_date, shipping_address)
		VALUES($1, $2, $3, NOW(), $4)
		RETURNING id, order_date`

	err = tx.QueryRowContext(dbCtx, orderQuery,
		order.UserID, order.Status, order.Total, order.ShippingAddress).
		Scan(&order.ID, &order.OrderDate)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items(order_id, book_id, quantity, price)
		VALUES($1, $2, $3, $4)
		RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := tx.QueryRowContext(dbCtx, itemQuery,
			item.OrderID, item.BookID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return tx.Commit()
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}
	query := `
		SELECT id, user_id, status, total, order_date, shipping_address
		FROM orders
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&order.ID, &order.UserID, &order.Status, &order.Total,
		&order.OrderDate, &order.ShippingAddress)
	if err != nil {
		return nil, err
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, status, total, order_date, shipping_address
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.Total,
			&order.OrderDate, &order.ShippingAddress); err != nil {
			return nil, 0, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) OrderExists(ctx context.Context, id int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// itemsForOrder loads the complete item list, used when the order itself is
// returned with its lines.
func (r *orderRepository) itemsForOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, book_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

func (r *orderRepository) ListItemsByOrderID(ctx context.Context, orderID int64, page, pageSize int) ([]models.OrderItem, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx,
		`SELECT COUNT(*) FROM order_items WHERE order_id = $1`, orderID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, order_id, book_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanOrderItems(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func scanOrderItems(rows *sql.Rows) ([]models.OrderItem, error) {
	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.BookID,
			&item.Quantity, &item.Price); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepository) GetItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.OrderItem{}
	query := `
		SELECT id, order_id, book_id, quantity, price
		FROM order_items
		WHERE id = $1 AND order_id = $2`

	err := r.DB.QueryRowContext(dbCtx, query, itemID, orderID).Scan(
		&item.ID, &item.OrderID, &item.BookID, &item.Quantity, &item.Price)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
