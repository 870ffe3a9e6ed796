package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	service "github.com/aaravmahajanofficial/ecommerce-backend/internal/services"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// CreateUser godoc
//
//	@Summary		Create a user
//	@Description	Creates a user together with an empty cart. The password is never returned.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.CreateUserRequest	true	"Username and password"
//	@Success		200		{object}	models.User
//	@Failure		400		{object}	response.APIResponse	"Invalid input"
//	@Failure		409		{object}	response.APIResponse	"Username already exists"
//	@Router			/api/user/create [post]
func (h *UserHandler) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateUserRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.CreateUser(r.Context(), &req)
		if err != nil {
			logger.Warn("User creation failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User created", slog.Int64("userID", user.ID))
		response.Success(w, http.StatusOK, user)
	}
}

// FindByID godoc
//
//	@Summary	Get a user by id
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	models.User
//	@Failure	400	{object}	response.APIResponse	"Invalid id"
//	@Failure	401	{object}	response.APIResponse	"Unauthorized"
//	@Failure	404	"User not found"
//	@Router		/api/user/id/{id} [get]
func (h *UserHandler) FindByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("User lookup failed", slog.String("userID", strconv.FormatInt(id, 10)), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

// FindByUsername godoc
//
//	@Summary	Get a user by username
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		username	path		string	true	"Username"
//	@Success	200			{object}	models.User
//	@Failure	401			{object}	response.APIResponse	"Unauthorized"
//	@Failure	404			"User not found"
//	@Router		/api/user/{username} [get]
func (h *UserHandler) FindByUsername() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		username, err := utils.PathString(r, "username")
		if err != nil {
			response.Error(w, err)
			return
		}

		user, err := h.userService.GetUserByUsername(r.Context(), username)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("User lookup failed", slog.String("username", username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchanges credentials for a bearer token. Attempts are rate limited per username.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest	true	"Username and password"
//	@Success		200			{object}	models.LoginResponse
//	@Failure		400			{object}	response.APIResponse	"Invalid input"
//	@Failure		401			{object}	response.APIResponse	"Invalid credentials"
//	@Failure		429			{object}	response.APIResponse	"Too many attempts"
//	@Router			/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			if resp != nil && resp.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
			}

			logger.Warn("Login failed", slog.String("username", req.Username), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User logged in", slog.String("username", req.Username))
		response.Success(w, http.StatusOK, resp)
	}
}
