package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils"
	"github.com/lib/pq"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.UserOrder) error
	ListOrdersByUserID(ctx context.Context, userID int64) ([]models.UserOrder, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder stores the order header and one row per item, keeping the
// item order through the position column.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.UserOrder) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_orders (user_id, total, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := tx.QueryRowContext(dbCtx, query, order.UserID, order.Total).Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO user_order_items (order_id, position, item_id)
		VALUES ($1, $2, $3)
	`

	for position, item := range order.Items {
		if _, err := tx.ExecContext(dbCtx, itemQuery, order.ID, position, item.ID); err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// ListOrdersByUserID returns the user's orders oldest first. A user without
// orders gets an empty, non-nil slice.
func (r *orderRepository) ListOrdersByUserID(ctx context.Context, userID int64) ([]models.UserOrder, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, total, created_at
		FROM user_orders
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.UserOrder{}
	orderIDs := []int64{}
	indexByID := make(map[int64]int)

	for rows.Next() {
		var order models.UserOrder

		if err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan the orders: %w", err)
		}

		order.Items = []models.Item{}
		indexByID[order.ID] = len(orders)
		orderIDs = append(orderIDs, order.ID)
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	// now fetch the items of every order in one round trip
	itemQuery := `
		SELECT oi.order_id, i.id, i.name, i.price, i.description
		FROM user_order_items oi
		JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.position
	`

	itemRows, err := r.DB.QueryContext(dbCtx, itemQuery, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int64
		var item models.Item

		if err := itemRows.Scan(&orderID, &item.ID, &item.Name, &item.Price, &item.Description); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		idx, ok := indexByID[orderID]
		if !ok {
			continue
		}

		orders[idx].Items = append(orders[idx].Items, item)
	}

	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return orders, nil
}
