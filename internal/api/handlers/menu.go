package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lucabianchi/pizza-storefront/internal/api/middleware"
	"github.com/lucabianchi/pizza-storefront/internal/errors"
	service "github.com/lucabianchi/pizza-storefront/internal/services"
	"github.com/lucabianchi/pizza-storefront/internal/utils/response"
)

type MenuHandler struct {
	menuService *service.MenuService
}

func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func (h *MenuHandler) ListMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		menu, err := h.menuService.ListMenu(r.Context())
		if err != nil {
			logger.Error("Failed to list menu", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, menu)
	}
}

func (h *MenuHandler) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			logger.Warn("Invalid menu item id", slog.String("id", r.PathValue("id")))
			response.Error(w, errors.BadRequestError("Invalid menu item ID"))

			return
		}

		item, err := h.menuService.GetItem(r.Context(), id)
		if err != nil {
			logger.Warn("Menu item lookup failed", slog.Int64("itemID", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, item)
	}
}
