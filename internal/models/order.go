package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// ParseOrderStatus matches a status name against the closed enumeration,
// case-insensitively. Unknown names are rejected, never coerced.
func ParseOrderStatus(name string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(name)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCompleted:
		return OrderStatusCompleted, nil
	case OrderStatusCanceled:
		return OrderStatusCanceled, nil
	default:
		return "", fmt.Errorf("invalid status: %s", name)
	}
}

type OrderItem struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"order_id"`
	BookID   int64           `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"` // unit price frozen at order time
}

type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Status          OrderStatus     `json:"status"`
	Total           decimal.Decimal `json:"total"`
	OrderDate       time.Time       `json:"order_date"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []OrderItem     `json:"items"`
}

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
