package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *UserService) Authenticate(ctx context.Context, username, password string) (*models.Principal, error) {
	args := m.Called(ctx, username, password)

	principal, _ := args.Get(0).(*models.Principal)

	return principal, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	resp, _ := args.Get(0).(*models.LoginResponse)

	return resp, args.Error(1)
}

type ItemService struct {
	mock.Mock
}

func (m *ItemService) ListItems(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)

	items, _ := args.Get(0).([]models.Item)

	return items, args.Error(1)
}

func (m *ItemService) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)

	item, _ := args.Get(0).(*models.Item)

	return item, args.Error(1)
}

func (m *ItemService) GetItemsByName(ctx context.Context, name string) ([]models.Item, error) {
	args := m.Called(ctx, name)

	items, _ := args.Get(0).([]models.Item)

	return items, args.Error(1)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) AddToCart(ctx context.Context, req *models.ModifyCartRequest) (*models.Cart, error) {
	args := m.Called(ctx, req)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartService) RemoveFromCart(ctx context.Context, req *models.ModifyCartRequest) (*models.Cart, error) {
	args := m.Called(ctx, req)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartService) GetCart(ctx context.Context, username string) (*models.Cart, error) {
	args := m.Called(ctx, username)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) SubmitOrder(ctx context.Context, username string) (*models.UserOrder, error) {
	args := m.Called(ctx, username)

	order, _ := args.Get(0).(*models.UserOrder)

	return order, args.Error(1)
}

func (m *OrderService) OrderHistory(ctx context.Context, username string) ([]models.UserOrder, error) {
	args := m.Called(ctx, username)

	orders, _ := args.Get(0).([]models.UserOrder)

	return orders, args.Error(1)
}
