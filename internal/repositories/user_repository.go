package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

// CreateUser inserts the user and its empty cart in one transaction. A
// taken username surfaces as ErrDuplicateUsername.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (username, password, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`

	if err := tx.QueryRowContext(dbCtx, query, user.Username, user.Password).Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrDuplicateUsername, err)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	cart := models.NewCart(user.ID)

	cartQuery := `
		INSERT INTO carts (user_id, items, total, created_at, updated_at)
		VALUES ($1, '[]'::jsonb, 0, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	if err := tx.QueryRowContext(dbCtx, cartQuery, user.ID).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}

	user.Cart = cart

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {

	query := `
		SELECT id, username, password, created_at
		FROM users
		WHERE id = $1`

	return r.getUser(ctx, query, id)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {

	query := `
		SELECT id, username, password, created_at
		FROM users
		WHERE username = $1`

	return r.getUser(ctx, query, username)
}

func (r *userRepository) getUser(ctx context.Context, query string, arg any) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	err := r.DB.QueryRowContext(dbCtx, query, arg).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return user, nil
}
