package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	service "github.com/aaravmahajanofficial/ecommerce-backend/internal/services"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// AddToCart godoc
//
//	@Summary		Add items to a cart
//	@Description	Appends quantity copies of the item to the user's cart.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		models.ModifyCartRequest	true	"Username, item id and quantity"
//	@Success		200		{object}	models.Cart
//	@Failure		400		{object}	response.APIResponse	"Invalid input"
//	@Failure		401		{object}	response.APIResponse	"Unauthorized"
//	@Failure		404		"User or item not found"
//	@Router			/api/cart/addToCart [post]
func (h *CartHandler) AddToCart() http.HandlerFunc {
	return h.modify("add", h.cartService.AddToCart)
}

// RemoveFromCart godoc
//
//	@Summary		Remove items from a cart
//	@Description	Removes up to quantity copies of the item. Removing more than present empties that item.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		models.ModifyCartRequest	true	"Username, item id and quantity"
//	@Success		200		{object}	models.Cart
//	@Failure		400		{object}	response.APIResponse	"Invalid input"
//	@Failure		401		{object}	response.APIResponse	"Unauthorized"
//	@Failure		404		"User or item not found"
//	@Router			/api/cart/removeFromCart [post]
func (h *CartHandler) RemoveFromCart() http.HandlerFunc {
	return h.modify("remove", h.cartService.RemoveFromCart)
}

// GetCart godoc
//
//	@Summary	Get a user's cart
//	@Tags		Carts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		username	path		string	true	"Username"
//	@Success	200			{object}	models.Cart
//	@Failure	401			{object}	response.APIResponse	"Unauthorized"
//	@Failure	404			"User not found"
//	@Router		/api/cart/{username} [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		username, err := utils.PathString(r, "username")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), username)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Cart lookup failed", slog.String("username", username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) modify(action string, apply func(ctx context.Context, req *models.ModifyCartRequest) (*models.Cart, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ModifyCartRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := apply(r.Context(), &req)
		if err != nil {
			logger.Warn("Cart update failed",
				slog.String("action", action),
				slog.String("username", req.Username),
				slog.Int64("itemID", req.ItemID),
				slog.String("error", err.Error()),
			)
			response.Error(w, err)
			return
		}

		logger.Info("Cart updated",
			slog.String("action", action),
			slog.Int64("itemID", req.ItemID),
			slog.Int("quantity", req.Quantity),
			slog.Int("items", len(cart.Items)),
		)
		response.Success(w, http.StatusOK, cart)
	}
}
