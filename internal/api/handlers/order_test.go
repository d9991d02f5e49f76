package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkravchuk/bookshop-platform/internal/api/handlers"
	appErrors "github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/services/mocks"
	"github.com/mkravchuk/bookshop-platform/internal/testutils"
	"github.com/mkravchuk/bookshop-platform/internal/utils/response"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupOrderTest() (*mocks.OrderService, *handlers.OrderHandler) {
	mockOrderService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockOrderService)

	return mockOrderService, orderHandler
}

func TestPlaceOrderHandler(t *testing.T) {
	t.Run("Success - Returns 201 With Order", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		body, _ := json.Marshal(models.PlaceOrderRequest{ShippingAddress: "1 Library Lane"})
		req := testutils.CreateTestRequestWithContext("POST", "/orders", bytes.NewBuffer(body), 7, models.RoleUser, nil)
		recorder := httptest.NewRecorder()

		mockOrder := &models.Order{
			ID:     42,
			UserID: 7,
			Status: models.OrderStatusPending,
			Total:  decimal.RequireFromString("33.97"),
		}

		mockOrderService.On("PlaceOrder", mock.Anything, int64(7), mock.AnythingOfType("*models.PlaceOrderRequest")).
			Return(mockOrder, nil).Once()

		// Act
		orderHandler.PlaceOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp response.APIResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		mockOrderService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		_, orderHandler := setupOrderTest()

		body, _ := json.Marshal(models.PlaceOrderRequest{ShippingAddress: "1 Library Lane"})
		req := testutils.CreateTestRequestWithoutContext("POST", "/orders", bytes.NewBuffer(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		orderHandler.PlaceOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - Missing Shipping Address", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		req := testutils.CreateTestRequestWithContext("POST", "/orders", bytes.NewBufferString(`{}`), 7, models.RoleUser, nil)
		recorder := httptest.NewRecorder()

		// Act
		orderHandler.PlaceOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		mockOrderService.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty Cart Maps To 409", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		body, _ := json.Marshal(models.PlaceOrderRequest{ShippingAddress: "1 Library Lane"})
		req := testutils.CreateTestRequestWithContext("POST", "/orders", bytes.NewBuffer(body), 7, models.RoleUser, nil)
		recorder := httptest.NewRecorder()

		mockOrderService.On("PlaceOrder", mock.Anything, int64(7), mock.AnythingOfType("*models.PlaceOrderRequest")).
			Return(nil, appErrors.EmptyCartError("Shopping cart is empty for user id 7")).Once()

		// Act
		orderHandler.PlaceOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)

		var resp response.APIResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, resp.Error.Code)
	})
}

func TestGetOrderHandler(t *testing.T) {
	t.Run("Failure - Another User's Order", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		req := testutils.CreateTestRequestWithContext("GET", "/orders/42", nil, 7, models.RoleUser,
			map[string]string{"id": "42"})
		recorder := httptest.NewRecorder()

		mockOrderService.On("GetOrder", mock.Anything, int64(42)).
			Return(&models.Order{ID: 42, UserID: 8}, nil).Once()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("Success - Admin Can Read Any Order", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		req := testutils.CreateTestRequestWithContext("GET", "/orders/42", nil, 1, models.RoleAdmin,
			map[string]string{"id": "42"})
		recorder := httptest.NewRecorder()

		mockOrderService.On("GetOrder", mock.Anything, int64(42)).
			Return(&models.Order{ID: 42, UserID: 8}, nil).Once()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		req := testutils.CreateTestRequestWithContext("GET", "/orders/abc", nil, 7, models.RoleUser,
			map[string]string{"id": "abc"})
		recorder := httptest.NewRecorder()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		mockOrderService.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	})
}

func TestGetItemsHandler(t *testing.T) {
	t.Run("Success - Pagination Reaches The Service", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		req := testutils.CreateTestRequestWithContext("GET", "/orders/42/items?page=3&pageSize=5", nil,
			7, models.RoleUser, map[string]string{"id": "42"})
		recorder := httptest.NewRecorder()

		mockOrderService.On("GetItems", mock.Anything, int64(42), 3, 5).
			Return(&models.PaginatedResponse{
				Data:     []models.OrderItem{{ID: 111, OrderID: 42, BookID: 10, Quantity: 2}},
				Total:    25,
				Page:     3,
				PageSize: 5,
			}, nil).Once()

		// Act
		orderHandler.GetItems()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		mockOrderService.AssertExpectations(t)
	})

	t.Run("Success - Defaults When No Query Params", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		req := testutils.CreateTestRequestWithContext("GET", "/orders/42/items", nil,
			7, models.RoleUser, map[string]string{"id": "42"})
		recorder := httptest.NewRecorder()

		mockOrderService.On("GetItems", mock.Anything, int64(42), 1, 10).
			Return(&models.PaginatedResponse{Data: []models.OrderItem{}, Total: 0, Page: 1, PageSize: 10}, nil).Once()

		// Act
		orderHandler.GetItems()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		mockOrderService.AssertExpectations(t)
	})
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	t.Run("Failure - Unknown Status Maps To 400", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		body, _ := json.Marshal(models.UpdateOrderStatusRequest{Status: "SHIPPED"})
		req := testutils.CreateTestRequestWithContext("PATCH", "/orders/42/status", bytes.NewBuffer(body),
			1, models.RoleAdmin, map[string]string{"id": "42"})
		recorder := httptest.NewRecorder()

		mockOrderService.On("UpdateStatus", mock.Anything, int64(42), "SHIPPED").
			Return(nil, appErrors.InvalidStatusError("Invalid status: SHIPPED")).Once()

		// Act
		orderHandler.UpdateOrderStatus()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, appErrors.ErrCodeInvalidStatus, resp.Error.Code)
		assert.Equal(t, "Invalid status: SHIPPED", resp.Error.Message)
	})

	t.Run("Success - Status Updated", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest()

		body, _ := json.Marshal(models.UpdateOrderStatusRequest{Status: "delivered"})
		req := testutils.CreateTestRequestWithContext("PATCH", "/orders/42/status", bytes.NewBuffer(body),
			1, models.RoleAdmin, map[string]string{"id": "42"})
		recorder := httptest.NewRecorder()

		mockOrderService.On("UpdateStatus", mock.Anything, int64(42), "delivered").
			Return(&models.Order{ID: 42, Status: models.OrderStatusDelivered}, nil).Once()

		// Act
		orderHandler.UpdateOrderStatus()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		mockOrderService.AssertExpectations(t)
	})
}
