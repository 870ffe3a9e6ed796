package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/middleware"
	service "github.com/aaravmahajanofficial/ecommerce-backend/internal/services"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Submit godoc
//
//	@Summary		Submit an order
//	@Description	Snapshots the user's cart into a new order. The cart is left as it is.
//	@Tags			Orders
//	@Produce		json
//	@Security		BearerAuth
//	@Param			username	path		string	true	"Username"
//	@Success		200			{object}	models.UserOrder
//	@Failure		401			{object}	response.APIResponse	"Unauthorized"
//	@Failure		404			"User not found"
//	@Router			/api/order/submit/{username} [post]
func (h *OrderHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		username, err := utils.PathString(r, "username")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.SubmitOrder(r.Context(), username)
		if err != nil {
			logger.Error("Order submission failed", slog.String("username", username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order submitted", slog.Int64("orderID", order.ID), slog.String("username", username))
		response.Success(w, http.StatusOK, order)
	}
}

// History godoc
//
//	@Summary	Order history
//	@Tags		Orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		username	path		string	true	"Username"
//	@Success	200			{array}		models.UserOrder
//	@Failure	401			{object}	response.APIResponse	"Unauthorized"
//	@Failure	404			"User not found"
//	@Router		/api/order/history/{username} [get]
func (h *OrderHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		username, err := utils.PathString(r, "username")
		if err != nil {
			response.Error(w, err)
			return
		}

		orders, err := h.orderService.OrderHistory(r.Context(), username)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Order history failed", slog.String("username", username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
