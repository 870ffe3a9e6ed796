package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/ecommerce-backend/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-backend/internal/repositories"
)

type CartService interface {
	AddToCart(ctx context.Context, req *models.ModifyCartRequest) (*models.Cart, error)
	RemoveFromCart(ctx context.Context, req *models.ModifyCartRequest) (*models.Cart, error)
	GetCart(ctx context.Context, username string) (*models.Cart, error)
}

type cartService struct {
	repo     repository.CartRepository
	userRepo repository.UserRepository
	items    ItemService
}

func NewCartService(repo repository.CartRepository, userRepo repository.UserRepository, items ItemService) CartService {
	return &cartService{
		repo:     repo,
		userRepo: userRepo,
		items:    items,
	}
}

func (s *cartService) AddToCart(ctx context.Context, req *models.ModifyCartRequest) (*models.Cart, error) {
	return s.modify(ctx, req, (*models.Cart).AddItem)
}

func (s *cartService) RemoveFromCart(ctx context.Context, req *models.ModifyCartRequest) (*models.Cart, error) {
	return s.modify(ctx, req, (*models.Cart).RemoveItem)
}

func (s *cartService) GetCart(ctx context.Context, username string) (*models.Cart, error) {

	user, err := findUser(ctx, s.userRepo, username)
	if err != nil {
		return nil, err
	}

	return cartForUser(ctx, s.repo, user.ID)
}

// modify resolves the user before the item, so an unknown user is reported
// even when the item is unknown too.
func (s *cartService) modify(ctx context.Context, req *models.ModifyCartRequest, apply func(*models.Cart, models.Item, int)) (*models.Cart, error) {

	if req.Quantity < 0 || req.Quantity > models.MaxCartQuantity {
		return nil, appErrors.AddValidationError("quantity", fmt.Sprintf("must be between 0 and %d", models.MaxCartQuantity))
	}

	user, err := findUser(ctx, s.userRepo, req.Username)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	cart, err := cartForUser(ctx, s.repo, user.ID)
	if err != nil {
		return nil, err
	}

	apply(cart, *item, req.Quantity)

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// cartForUser loads the user's cart, creating an empty one when a user row
// exists without a cart.
func cartForUser(ctx context.Context, repo repository.CartRepository, userID int64) (*models.Cart, error) {

	cart, err := repo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Creating missing cart", slog.Int64("userID", userID))

	cart = models.NewCart(userID)
	if err := repo.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}
