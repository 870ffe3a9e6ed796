package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/ecommerce-backend/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/services/mocks"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/testutils"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewBuffer(body)
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) *response.ErrorResponse {
	t.Helper()

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)

	return body.Error
}

func assertNoPassword(t *testing.T, w *httptest.ResponseRecorder, hash string) {
	t.Helper()

	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
	if hash != "" {
		assert.NotContains(t, w.Body.String(), hash)
	}
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("Success returns the user without password", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		created := &models.User{ID: 1, Username: "ahmed", Password: "$2a$10$thisIsHashed", CreatedAt: time.Now(), Cart: models.NewCart(1)}

		userService.On("CreateUser", mock.Anything, mock.MatchedBy(func(r *models.CreateUserRequest) bool {
			return r.Username == "ahmed" && r.Password == "test1234"
		})).Return(created, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/user/create",
			jsonBody(t, map[string]string{"username": "ahmed", "password": "test1234"}), nil)
		w := httptest.NewRecorder()

		userHandler.CreateUser()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got models.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "ahmed", got.Username)
		assertNoPassword(t, w, created.Password)
		userService.AssertExpectations(t)
	})

	t.Run("Short password is passed through to the service", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("CreateUser", mock.Anything, &models.CreateUserRequest{Username: "ahmed", Password: "abc"}).
			Return(&models.User{ID: 2, Username: "ahmed"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/user/create",
			jsonBody(t, map[string]string{"username": "ahmed", "password": "abc"}), nil)
		w := httptest.NewRecorder()

		userHandler.CreateUser()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		userService.AssertExpectations(t)
	})

	t.Run("Missing fields", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/user/create",
			jsonBody(t, map[string]string{"username": "ahmed"}), nil)
		w := httptest.NewRecorder()

		userHandler.CreateUser()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeAPIError(t, w).Code)
		userService.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/user/create", strings.NewReader("{"), nil)
		w := httptest.NewRecorder()

		userHandler.CreateUser()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, decodeAPIError(t, w).Code)
	})

	t.Run("Duplicate username is a conflict", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("Username already exists")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/user/create",
			jsonBody(t, map[string]string{"username": "ahmed", "password": "test1234"}), nil)
		w := httptest.NewRecorder()

		userHandler.CreateUser()(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, decodeAPIError(t, w).Code)
		assertNoPassword(t, w, "")
	})
}

func TestUserHandler_FindByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("GetUserByID", mock.Anything, int64(1)).
			Return(&models.User{ID: 1, Username: "ahmed", Password: "secret-hash"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/user/id/1", nil, 1, "ahmed", map[string]string{"id": "1"})
		w := httptest.NewRecorder()

		userHandler.FindByID()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assertNoPassword(t, w, "secret-hash")
	})

	t.Run("Unknown id is a bare 404", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("GetUserByID", mock.Anything, int64(9)).Return(nil, appErrors.NotFoundError("User not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/user/id/9", nil, 1, "ahmed", map[string]string{"id": "9"})
		w := httptest.NewRecorder()

		userHandler.FindByID()(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Non numeric id", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/user/id/abc", nil, 1, "ahmed", map[string]string{"id": "abc"})
		w := httptest.NewRecorder()

		userHandler.FindByID()(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		userService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})
}

func TestUserHandler_FindByUsername(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("GetUserByUsername", mock.Anything, "ahmed").
			Return(&models.User{ID: 1, Username: "ahmed", Password: "secret-hash"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/user/ahmed", nil, 1, "ahmed", map[string]string{"username": "ahmed"})
		w := httptest.NewRecorder()

		userHandler.FindByUsername()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assertNoPassword(t, w, "secret-hash")
	})

	t.Run("Unknown username", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("GetUserByUsername", mock.Anything, "nobody").Return(nil, appErrors.NotFoundError("User not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/user/nobody", nil, 1, "ahmed", map[string]string{"username": "nobody"})
		w := httptest.NewRecorder()

		userHandler.FindByUsername()(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestUserHandler_Login(t *testing.T) {
	loginBody := func(t *testing.T) *bytes.Buffer {
		return jsonBody(t, map[string]string{"username": "ahmed", "password": "test1234"})
	}

	t.Run("Success", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, &models.LoginRequest{Username: "ahmed", Password: "test1234"}).
			Return(&models.LoginResponse{Success: true, Token: "jwt-token", ExpiresIn: 3600}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/login", loginBody(t), nil)
		w := httptest.NewRecorder()

		userHandler.Login()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.True(t, got.Success)
		assert.Equal(t, "jwt-token", got.Token)
	})

	t.Run("Bad credentials", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{RemainingTries: 3}, appErrors.UnauthorizedError("Invalid username or password")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/login", loginBody(t), nil)
		w := httptest.NewRecorder()

		userHandler.Login()(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, decodeAPIError(t, w).Code)
	})

	t.Run("Rate limited sets Retry-After", func(t *testing.T) {
		userService := new(mocks.UserService)
		userHandler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{RetryAfter: 30}, appErrors.TooManyRequestsError("Too many login attempts")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/login", loginBody(t), nil)
		w := httptest.NewRecorder()

		userHandler.Login()(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "30", w.Header().Get("Retry-After"))
	})
}
