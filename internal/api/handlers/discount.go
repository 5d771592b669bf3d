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

type DiscountHandler struct {
	discountService *service.DiscountService
	validator       *validator.Validate
}

func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService, validator: validator.New()}
}

func (h *DiscountHandler) CreateCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized discount creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		dc, err := h.discountService.CreateCode(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to create discount code", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Discount code created",
			slog.String("userID", claims.UserID.String()),
			slog.String("code", dc.Code))
		response.Success(w, http.StatusCreated, models.CreateDiscountResponse{
			Success:      true,
			DiscountCode: dc,
		})
	}
}

// ValidateCode answers whether a code is currently redeemable. Unknown, used
// and expired codes are a valid=false result, not an error.
func (h *DiscountHandler) ValidateCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

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

		response.Success(w, http.StatusOK, result)
	}
}
