package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils"
)

type ItemRepository interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByName(ctx context.Context, name string) ([]models.Item, error)
}

type itemRepository struct {
	DB *sql.DB
}

func NewItemRepo(db *sql.DB) ItemRepository {
	return &itemRepository{DB: db}
}

func (r *itemRepository) ListItems(ctx context.Context) ([]models.Item, error) {

	query := `
		SELECT id, name, price, description
		FROM items
		ORDER BY id`

	return r.queryItems(ctx, query)
}

func (r *itemRepository) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, price, description
		FROM items
		WHERE id = $1`

	item := &models.Item{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&item.ID, &item.Name, &item.Price, &item.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying item: %w", err)
	}

	return item, nil
}

func (r *itemRepository) GetItemsByName(ctx context.Context, name string) ([]models.Item, error) {

	query := `
		SELECT id, name, price, description
		FROM items
		WHERE name = $1
		ORDER BY id`

	return r.queryItems(ctx, query, name)
}

func (r *itemRepository) queryItems(ctx context.Context, query string, args ...any) ([]models.Item, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}

	for rows.Next() {
		var item models.Item

		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Description); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}
