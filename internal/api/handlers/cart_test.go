package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/api/handlers"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	"github.com/lucabianchi/pizza-storefront/internal/repositories/mocks"
	service "github.com/lucabianchi/pizza-storefront/internal/services"
	"github.com/lucabianchi/pizza-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartEnvelope struct {
	Success bool            `json:"success"`
	Data    models.CartView `json:"data"`
}

func newCartHandler(discountRepo *mocks.DiscountRepository) (*handlers.CartHandler, *service.CartService) {
	cartService := service.NewCartService(nil, time.Hour)
	discountService := service.NewDiscountService(discountRepo, new(mocks.UserRepository), 10, time.Hour)

	return handlers.NewCartHandler(cartService, discountService), cartService
}

func decodeCart(t *testing.T, rr *httptest.ResponseRecorder) models.CartView {
	t.Helper()

	var envelope cartEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)

	return envelope.Data
}

func addItemBody(t *testing.T, id any, name string, price float64, quantity int) *bytes.Buffer {
	t.Helper()

	payload := map[string]any{
		"id":       id,
		"name":     name,
		"price":    price,
		"size":     "large",
		"toppings": []string{"basil"},
		"quantity": quantity,
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	return bytes.NewBuffer(data)
}

func TestCartHandlerAddItem(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Item Added", func(t *testing.T) {
		// Arrange
		handler, _ := newCartHandler(new(mocks.DiscountRepository))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items",
			addItemBody(t, "p1", "Margherita", 12.50, 2), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rr, req)

		// Assert
		require.Equal(t, http.StatusOK, rr.Code)
		view := decodeCart(t, rr)
		require.Len(t, view.Items, 1)
		assert.InDelta(t, 25.0, view.TotalAmount, 0.001)
		assert.Equal(t, 2, view.TotalItems)
	})

	t.Run("Success - Numeric ID Accepted", func(t *testing.T) {
		handler, _ := newCartHandler(new(mocks.DiscountRepository))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items",
			addItemBody(t, 42, "Diavola", 14.0, 1), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		view := decodeCart(t, rr)
		require.Len(t, view.Items, 1)
		assert.Equal(t, models.ItemID("42"), view.Items[0].ID)
	})

	t.Run("Failure - Invalid Payload Rejected At Boundary", func(t *testing.T) {
		handler, _ := newCartHandler(new(mocks.DiscountRepository))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items",
			addItemBody(t, "p1", "Margherita", -5, 2), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Success - Engine Silently Drops Blank Name", func(t *testing.T) {
		// "   " passes the required tag but fails the cart's own trim check.
		handler, _ := newCartHandler(new(mocks.DiscountRepository))
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items",
			addItemBody(t, "p1", "   ", 12.50, 2), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		view := decodeCart(t, rr)
		assert.Empty(t, view.Items)
	})

	t.Run("Failure - Missing Claims", func(t *testing.T) {
		handler, _ := newCartHandler(new(mocks.DiscountRepository))
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/cart/items",
			addItemBody(t, "p1", "Margherita", 12.50, 2), nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestCartHandlerItemLifecycle(t *testing.T) {
	userID := uuid.New()
	handler, cartService := newCartHandler(new(mocks.DiscountRepository))

	cartService.AddItem(context.Background(), userID, &models.AddItemRequest{
		ID: "p1", Name: "Margherita", Price: 12.50, Size: "large", Quantity: 2,
	})

	t.Run("Success - Update Quantity", func(t *testing.T) {
		body, err := json.Marshal(models.UpdateQuantityRequest{Quantity: 5})
		require.NoError(t, err)

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items/p1/quantity",
			bytes.NewBuffer(body), userID, map[string]string{"id": "p1"})
		rr := httptest.NewRecorder()

		handler.UpdateQuantity().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		view := decodeCart(t, rr)
		assert.Equal(t, 5, view.TotalItems)
	})

	t.Run("Success - Remove Item", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/p1",
			nil, userID, map[string]string{"id": "p1"})
		rr := httptest.NewRecorder()

		handler.RemoveItem().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		view := decodeCart(t, rr)
		assert.Empty(t, view.Items)
		assert.Zero(t, view.TotalAmount)
	})
}

func TestCartHandlerApplyDiscount(t *testing.T) {
	userID := uuid.New()

	applyBody := func(t *testing.T, code string) *bytes.Buffer {
		t.Helper()
		data, err := json.Marshal(models.ApplyDiscountRequest{Code: code})
		require.NoError(t, err)

		return bytes.NewBuffer(data)
	}

	t.Run("Success - Valid Code Applied", func(t *testing.T) {
		// Arrange
		discountRepo := new(mocks.DiscountRepository)
		handler, cartService := newCartHandler(discountRepo)

		cartService.AddItem(context.Background(), userID, &models.AddItemRequest{
			ID: "p1", Name: "Margherita", Price: 49.99, Size: "large", Quantity: 1,
		})

		dc := &models.DiscountCode{Code: "MARG123ABC", DiscountPercentage: 15, ExpiresAt: time.Now().Add(time.Hour)}
		discountRepo.On("GetByCode", mock.Anything, dc.Code).Return(dc, nil)

		request := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/discount",
			applyBody(t, dc.Code), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ApplyDiscount().ServeHTTP(rr, request)

		// Assert
		require.Equal(t, http.StatusOK, rr.Code)
		view := decodeCart(t, rr)
		require.NotNil(t, view.DiscountCode)
		assert.InDelta(t, 7.50, view.DiscountAmount, 0.001)
		assert.InDelta(t, 42.49, view.FinalAmount, 0.001)
	})

	t.Run("Success - Invalid Code Reported Without Applying", func(t *testing.T) {
		discountRepo := new(mocks.DiscountRepository)
		handler, cartService := newCartHandler(discountRepo)

		cartService.AddItem(context.Background(), userID, &models.AddItemRequest{
			ID: "p1", Name: "Margherita", Price: 49.99, Size: "large", Quantity: 1,
		})

		discountRepo.On("GetByCode", mock.Anything, "NOPE").Return(nil, sql.ErrNoRows)

		request := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/discount",
			applyBody(t, "NOPE"), userID, nil)
		rr := httptest.NewRecorder()

		handler.ApplyDiscount().ServeHTTP(rr, request)

		require.Equal(t, http.StatusOK, rr.Code)

		var envelope struct {
			Success bool                            `json:"success"`
			Data    models.DiscountValidationResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.False(t, envelope.Data.Valid)
		assert.Equal(t, "Invalid discount code", envelope.Data.Error)

		assert.Nil(t, cartService.GetCart(context.Background(), userID).DiscountCode)
	})
}
