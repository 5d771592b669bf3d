package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/api/middleware"
	"github.com/lucabianchi/pizza-storefront/internal/errors"
	service "github.com/lucabianchi/pizza-storefront/internal/services"
	"github.com/lucabianchi/pizza-storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService *service.OrderService
	cartService  *service.CartService
}

func NewOrderHandler(orderService *service.OrderService, cartService *service.CartService) *OrderHandler {
	return &OrderHandler{orderService: orderService, cartService: cartService}
}

// SubmitOrder places an order from the user's current cart. The cart's
// submission flag fences concurrent submits for the same user; it does not
// make submission exactly-once, it only keeps two in-flight submits from
// racing each other.
func (h *OrderHandler) SubmitOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order submission attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		if !h.cartService.BeginSubmission(r.Context(), claims.UserID) {
			logger.Warn("Order submission already in progress")
			response.Error(w, errors.TooManyRequestsError("An order submission is already in progress"))

			return
		}
		defer h.cartService.EndSubmission(r.Context(), claims.UserID)

		view := h.cartService.GetCart(r.Context(), claims.UserID)

		resp, err := h.orderService.SubmitOrder(r.Context(), claims.UserID, view)
		if err != nil {
			logger.Error("Order submission failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		// The cart empties only once the order is safely stored.
		h.cartService.ClearCart(r.Context(), claims.UserID)

		if _, err := h.cartService.RemoveDiscount(r.Context(), claims.UserID); err != nil {
			logger.Warn("Failed to clear discount after submission", slog.Any("error", err))
		}

		logger.Info("Order submitted", slog.String("orderID", resp.OrderID))
		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orderID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			logger.Warn("Invalid order id", slog.String("id", r.PathValue("id")))
			response.Error(w, errors.BadRequestError("Invalid order ID"))

			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims.UserID, orderID)
		if err != nil {
			logger.Warn("Order lookup failed", slog.String("orderID", orderID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
