package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mkravchuk/bookshop-platform/internal/api/middleware"
	"github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/services"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
	"github.com/mkravchuk/bookshop-platform/internal/utils/response"
)

type OrderHandler struct {
	orderService services.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// PlaceOrder godoc
//	@Summary		Place an order from the current cart
//	@Description	Converts the user's cart into a pending order, freezing each book's price, and empties the cart. Everything happens in one transaction.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.PlaceOrderRequest	true	"Shipping details"
//	@Success		201		{object}	models.Order				"Successfully placed order"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Shopping cart not found"
//	@Failure		409		{object}	response.ErrorResponse		"Shopping cart is empty"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order placement attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.PlaceOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid place order input")
			return
		}

		order, err := h.orderService.PlaceOrder(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to place order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed successfully",
			slog.Int64("orderId", order.ID), slog.String("total", order.Total.StringFixed(2)))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Retrieves one of the authenticated user's orders with its items.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{object}	models.Order			"Successfully retrieved order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Order belongs to another user"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get order", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if order.UserID != claims.UserID && claims.Role != models.RoleAdmin {
			logger.Warn("Attempted to access another user's order",
				slog.Int64("orderId", id), slog.Int64("ownerId", order.UserID))
			response.Error(w, errors.ForbiddenError("You don't have permission to access this order"))
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//	@Summary		List the user's orders with pagination
//	@Description	Orders come back newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int												false	"Page number (default: 1)"
//	@Param			pageSize	query		int												false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Order}	"Successfully retrieved orders"
//	@Failure		401			{object}	response.ErrorResponse							"Authentication required"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.ParsePagination(r)

		result, err := h.orderService.ListOrders(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// GetItems godoc
//	@Summary		List the items of an order with pagination
//	@Tags			Orders
//	@Produce		json
//	@Param			id			path		int													true	"Order ID"
//	@Param			page		query		int													false	"Page number (default: 1)"
//	@Param			pageSize	query		int													false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.OrderItem}	"Successfully retrieved order items"
//	@Failure		400			{object}	response.ErrorResponse								"Invalid order ID"
//	@Failure		401			{object}	response.ErrorResponse								"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse								"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id}/items [get]
func (h *OrderHandler) GetItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		page, pageSize := utils.ParsePagination(r)

		result, err := h.orderService.GetItems(r.Context(), id, page, pageSize)
		if err != nil {
			logger.Error("Failed to get order items", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// GetItem godoc
//	@Summary		Get a single order item
//	@Tags			Orders
//	@Produce		json
//	@Param			id		path		int						true	"Order ID"
//	@Param			itemId	path		int						true	"Order item ID"
//	@Success		200		{object}	models.OrderItem		"Successfully retrieved order item"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid ID"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Order or item not found"
//	@Security		BearerAuth
//	@Router			/orders/{id}/items/{itemId} [get]
func (h *OrderHandler) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			logger.Warn("Invalid order item id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		item, err := h.orderService.GetItem(r.Context(), id, itemID)
		if err != nil {
			logger.Error("Failed to get order item",
				slog.Int64("orderId", id), slog.Int64("itemId", itemID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

// UpdateOrderStatus godoc
//	@Summary		Update order status
//	@Description	Moves an order to a new status. The status name is matched case-insensitively against the enumeration. Admin only.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Order ID"
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order					"Successfully updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid order ID or unknown status"
//	@Failure		403		{object}	response.ErrorResponse			"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [patch]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update order status input")
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status",
				slog.Int64("orderId", id), slog.String("status", req.Status), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.Int64("orderId", id), slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
