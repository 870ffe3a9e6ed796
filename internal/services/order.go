package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/ecommerce-backend/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/metrics"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-backend/internal/repositories"
)

type OrderService interface {
	SubmitOrder(ctx context.Context, username string) (*models.UserOrder, error)
	OrderHistory(ctx context.Context, username string) ([]models.UserOrder, error)
}

type orderService struct {
	repo     repository.OrderRepository
	cartRepo repository.CartRepository
	userRepo repository.UserRepository
}

func NewOrderService(repo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository) OrderService {
	return &orderService{
		repo:     repo,
		cartRepo: cartRepo,
		userRepo: userRepo,
	}
}

// SubmitOrder snapshots the current cart into a new order. The cart itself
// is left untouched and stays editable.
func (s *orderService) SubmitOrder(ctx context.Context, username string) (*models.UserOrder, error) {

	user, err := findUser(ctx, s.userRepo, username)
	if err != nil {
		return nil, err
	}

	cart, err := cartForUser(ctx, s.cartRepo, user.ID)
	if err != nil {
		return nil, err
	}

	order := models.NewUserOrderFromCart(cart)

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	metrics.RecordOrderSubmitted(len(order.Items))

	middleware.LoggerFromContext(ctx).Info("Order submitted",
		slog.Int64("orderID", order.ID),
		slog.String("username", username),
		slog.Int("items", len(order.Items)),
		slog.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

func (s *orderService) OrderHistory(ctx context.Context, username string) ([]models.UserOrder, error) {

	user, err := findUser(ctx, s.userRepo, username)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ListOrdersByUserID(ctx, user.ID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list orders").WithError(err)
	}

	if orders == nil {
		orders = []models.UserOrder{}
	}

	return orders, nil
}
