package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lucabianchi/pizza-storefront/internal/api/middleware"
	"github.com/lucabianchi/pizza-storefront/internal/errors"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	service "github.com/lucabianchi/pizza-storefront/internal/services"
	"github.com/lucabianchi/pizza-storefront/internal/utils"
	"github.com/lucabianchi/pizza-storefront/internal/utils/response"
)

type CartHandler struct {
	cartService     *service.CartService
	discountService *service.DiscountService
	validator       *validator.Validate
}

func NewCartHandler(cartService *service.CartService, discountService *service.DiscountService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		discountService: discountService,
		validator:       validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		view := h.cartService.GetCart(r.Context(), claims.UserID)
		response.Success(w, http.StatusOK, view)
	}
}

// AddItem validates the payload shape at the boundary; candidates that pass
// here but violate the cart's own rules are dropped without error, so the
// caller should compare the returned cart against what it sent.
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view := h.cartService.AddItem(r.Context(), claims.UserID, &req)

		logger.Info("Cart item added",
			slog.String("userID", claims.UserID.String()),
			slog.String("itemID", req.ID.String()),
			slog.Int("totalItems", view.TotalItems))
		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		id := models.ItemID(r.PathValue("id"))
		view := h.cartService.RemoveItem(r.Context(), claims.UserID, id)

		logger.Info("Cart item removed", slog.String("userID", claims.UserID.String()), slog.String("itemID", string(id)))
		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		id := models.ItemID(r.PathValue("id"))
		view := h.cartService.UpdateQuantity(r.Context(), claims.UserID, id, req.Quantity)

		logger.Info("Cart quantity updated",
			slog.String("userID", claims.UserID.String()),
			slog.String("itemID", string(id)),
			slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		view := h.cartService.ClearCart(r.Context(), claims.UserID)

		logger.Info("Cart cleared", slog.String("userID", claims.UserID.String()))
		response.Success(w, http.StatusOK, view)
	}
}

// ApplyDiscount validates the code through the discount service first; only
// codes that pass reach the cart. Invalid codes come back as a normal
// response with valid=false rather than an HTTP error.
func (h *CartHandler) ApplyDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized discount attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.ApplyDiscountRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.discountService.Validate(r.Context(), req.Code)
		if err != nil {
			logger.Error("Discount validation failed", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		if !result.Valid {
			logger.Info("Discount code rejected", slog.String("code", req.Code), slog.String("reason", result.Error))
			response.Success(w, http.StatusOK, result)

			return
		}

		view, err := h.cartService.ApplyDiscount(r.Context(), claims.UserID, *result.DiscountCode)
		if err != nil {
			logger.Error("Failed to persist discount", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Discount applied",
			slog.String("userID", claims.UserID.String()),
			slog.String("code", req.Code),
			slog.Float64("discountAmount", view.DiscountAmount))
		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) RemoveDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized discount attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		view, err := h.cartService.RemoveDiscount(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to clear persisted discount", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Discount removed", slog.String("userID", claims.UserID.String()))
		response.Success(w, http.StatusOK, view)
	}
}
