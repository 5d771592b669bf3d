package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/lucabianchi/pizza-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) GetUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.User, error) {
	args := m.Called(ctx, usernameOrEmail)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

type MenuRepository struct {
	mock.Mock
}

func (m *MenuRepository) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]models.MenuItem); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MenuRepository) GetItemByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*models.MenuItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

type DiscountRepository struct {
	mock.Mock
}

func (m *DiscountRepository) CreateCode(ctx context.Context, code *models.DiscountCode) error {
	args := m.Called(ctx, code)

	return args.Error(0)
}

func (m *DiscountRepository) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	args := m.Called(ctx, code)
	if dc, ok := args.Get(0).(*models.DiscountCode); ok {
		return dc, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *DiscountRepository) MarkUsed(ctx context.Context, code string) error {
	args := m.Called(ctx, code)

	return args.Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
