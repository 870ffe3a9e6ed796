package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

func (m *CartRepository) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)

	items, _ := args.Get(0).([]models.Item)

	return items, args.Error(1)
}

func (m *ItemRepository) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)

	item, _ := args.Get(0).(*models.Item)

	return item, args.Error(1)
}

func (m *ItemRepository) GetItemsByName(ctx context.Context, name string) ([]models.Item, error) {
	args := m.Called(ctx, name)

	items, _ := args.Get(0).([]models.Item)

	return items, args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.UserOrder) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *OrderRepository) ListOrdersByUserID(ctx context.Context, userID int64) ([]models.UserOrder, error) {
	args := m.Called(ctx, userID)

	orders, _ := args.Get(0).([]models.UserOrder)

	return orders, args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
