package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/errors"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	repository "github.com/lucabianchi/pizza-storefront/internal/repositories"
	"github.com/lucabianchi/pizza-storefront/pkg/sendgrid"
)

type OrderService struct {
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	discountRepo repository.DiscountRepository
	email        sendgrid.EmailService
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, discountRepo repository.DiscountRepository, email sendgrid.EmailService) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		discountRepo: discountRepo,
		email:        email,
	}
}

// SubmitOrder turns the current cart snapshot into a persisted order. The
// caller clears the cart on success; duplicate submissions are fenced by
// the cart engine's submission flag before this is ever reached.
func (s *OrderService) SubmitOrder(ctx context.Context, userID uuid.UUID, view *models.CartView) (*models.OrderResponse, error) {
	if len(view.Items) == 0 {
		return nil, errors.BadRequestError("Cannot submit an order with an empty cart")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	order := &models.Order{
		ID:             uuid.New(),
		UserID:         userID,
		Items:          orderItems(view.Items),
		TotalAmount:    view.TotalAmount,
		TotalItems:     view.TotalItems,
		DiscountAmount: view.DiscountAmount,
		FinalAmount:    view.FinalAmount,
		Status:         models.OrderStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if view.DiscountCode != nil {
		order.DiscountCode = view.DiscountCode.Code
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to submit order").WithError(err)
	}

	if order.DiscountCode != "" {
		if err := s.discountRepo.MarkUsed(ctx, order.DiscountCode); err != nil {
			// The order is already placed; an unburned code is a nuisance,
			// not a failure.
			slog.Warn("Failed to mark discount code as used",
				slog.String("code", order.DiscountCode),
				slog.String("error", err.Error()))
		}
	}

	s.sendConfirmation(ctx, user, order)

	return &models.OrderResponse{
		Success: true,
		OrderID: order.ID.String(),
		Message: "Order placed successfully",
	}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.UserID != userID {
		return nil, errors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}

// sendConfirmation is best-effort: a mail failure never fails the order.
func (s *OrderService) sendConfirmation(ctx context.Context, user *models.User, order *models.Order) {
	if s.email == nil {
		return
	}

	subject := fmt.Sprintf("Your pizza order %s is in the oven", order.ID)
	plain := fmt.Sprintf("Thanks %s! We received your order of %d item(s) for a total of %.2f.",
		user.Username, order.TotalItems, order.FinalAmount)
	html := fmt.Sprintf("<p>Thanks <strong>%s</strong>! We received your order of %d item(s) for a total of <strong>%.2f</strong>.</p>",
		user.Username, order.TotalItems, order.FinalAmount)

	if err := s.email.Send(ctx, user.Email, subject, plain, html); err != nil {
		slog.Warn("Failed to send order confirmation email",
			slog.String("orderId", order.ID.String()),
			slog.String("error", err.Error()))
	}
}

func orderItems(items []models.LineItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))

	for _, item := range items {
		out = append(out, models.OrderItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Size:     item.Size,
			Toppings: item.Toppings,
			Quantity: item.Quantity,
		})
	}

	return out
}
