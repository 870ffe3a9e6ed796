package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/ecommerce-backend/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-backend/internal/repositories"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/security"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils"
)

type UserService interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.Principal, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type TokenIssuer interface {
	Issue(principal *models.Principal) (string, *models.Claims, error)
}

type userService struct {
	repo        repository.UserRepository
	rateLimiter repository.RateLimitRepository
	hasher      security.PasswordHasher
	tokens      TokenIssuer
}

func NewUserService(repo repository.UserRepository, rateLimiter repository.RateLimitRepository, hasher security.PasswordHasher, tokens TokenIssuer) UserService {
	return &userService{
		repo:        repo,
		rateLimiter: rateLimiter,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// CreateUser stores the user together with an empty cart. The unique index
// on username decides duplicates, so concurrent sign-ups cannot both win.
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {

	logger := middleware.LoggerFromContext(ctx)

	username, clean := utils.SanitizeName(req.Username)
	if username == "" {
		return nil, appErrors.AddValidationError("username", "must not be empty")
	}
	if !clean {
		return nil, appErrors.AddValidationError("username", "must not contain markup")
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Username: username,
		Password: hashedPassword,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			logger.Warn("Username already taken", slog.String("username", username))
			return nil, appErrors.DuplicateEntryError("Username already exists").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	logger.Info("User created", slog.Int64("userID", user.ID), slog.String("username", user.Username))

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			middleware.LoggerFromContext(ctx).Warn("User not found", slog.Int64("userID", id))
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return findUser(ctx, s.repo, username)
}

// Authenticate checks the credentials against the stored hash. Unknown
// users and wrong passwords give the same error.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.Principal, error) {

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.UnauthorizedError("Invalid username or password")
		}
		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		return nil, appErrors.UnauthorizedError("Invalid username or password")
	}

	return &models.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		Authorities: []string{},
	}, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	allowed, remaining, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, appErrors.InternalError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, appErrors.TooManyRequestsError("Too many login attempts. Please try again later.")
	}

	principal, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("username", req.Username), slog.Int("remainingTries", remaining))
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid username or password",
			RemainingTries: remaining,
		}, err
	}

	token, claims, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(claims.ExpiresAt.Sub(claims.IssuedAt.Time).Seconds()),
	}, nil
}

func findUser(ctx context.Context, repo repository.UserRepository, username string) (*models.User, error) {

	user, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			middleware.LoggerFromContext(ctx).Warn("User not found", slog.String("username", username))
			return nil, appErrors.NotFoundError("User not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}
