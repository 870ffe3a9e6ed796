package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-backend/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insertOrderSQL     = regexp.QuoteMeta(`INSERT INTO user_orders (user_id, total, created_at)`)
	insertOrderItemSQL = regexp.QuoteMeta(`INSERT INTO user_order_items (order_id, position, item_id)`)
	selectOrdersSQL    = regexp.QuoteMeta(`SELECT id, user_id, total, created_at`)
	selectOrderItemSQL = regexp.QuoteMeta(`SELECT oi.order_id, i.id, i.name, i.price, i.description`)
)

func TestNewOrderRepository(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, repository.NewOrderRepo(db))
}

func TestOrderRepository_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success keeps item positions", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)
		now := time.Now()

		order := &models.UserOrder{
			UserID: 3,
			Items:  []models.Item{roundWidget, squareWidget, roundWidget},
			Total:  decimal.RequireFromString("7.97"),
		}

		mock.ExpectBegin()
		mock.ExpectQuery(insertOrderSQL).
			WithArgs(int64(3), "7.97").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))
		mock.ExpectExec(insertOrderItemSQL).WithArgs(int64(11), 0, int64(1)).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(insertOrderItemSQL).WithArgs(int64(11), 1, int64(2)).WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectExec(insertOrderItemSQL).WithArgs(int64(11), 2, int64(1)).WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectCommit()

		err := repo.CreateOrder(ctx, order)

		require.NoError(t, err)
		assert.Equal(t, int64(11), order.ID)
		assert.WithinDuration(t, now, order.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty order writes only the header", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(insertOrderSQL).
			WithArgs(int64(3), "0").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(12), time.Now()))
		mock.ExpectCommit()

		err := repo.CreateOrder(ctx, &models.UserOrder{UserID: 3, Items: []models.Item{}, Total: decimal.Zero})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Item insert failure rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)
		dbError := errors.New("fk violation")

		mock.ExpectBegin()
		mock.ExpectQuery(insertOrderSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(13), time.Now()))
		mock.ExpectExec(insertOrderItemSQL).WillReturnError(dbError)
		mock.ExpectRollback()

		err := repo.CreateOrder(ctx, &models.UserOrder{UserID: 3, Items: []models.Item{roundWidget}, Total: roundWidget.Price})

		assert.ErrorIs(t, err, dbError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Commit failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(insertOrderSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(14), time.Now()))
		mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		err := repo.CreateOrder(ctx, &models.UserOrder{UserID: 3, Total: decimal.Zero})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit order")
	})
}

func TestOrderRepository_ListOrdersByUserID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Orders come back oldest first with their items", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)

		mock.ExpectQuery(selectOrdersSQL + `.*ORDER BY id ASC`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total", "created_at"}).
				AddRow(int64(11), int64(3), "2.99", now.Add(-time.Minute)).
				AddRow(int64(12), int64(3), "0", now))

		mock.ExpectQuery(selectOrderItemSQL).
			WithArgs("{11,12}").
			WillReturnRows(sqlmock.NewRows([]string{"order_id", "id", "name", "price", "description"}).
				AddRow(int64(11), int64(1), "Round Widget", "2.99", "A widget that is round"))

		orders, err := repo.ListOrdersByUserID(ctx, 3)

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, int64(11), orders[0].ID)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, "Round Widget", orders[0].Items[0].Name)
		assert.True(t, decimal.RequireFromString("2.99").Equal(orders[0].Total))
		assert.NotNil(t, orders[1].Items)
		assert.Empty(t, orders[1].Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No orders skips the item query", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)

		mock.ExpectQuery(selectOrdersSQL).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total", "created_at"}))

		orders, err := repo.ListOrdersByUserID(ctx, 4)

		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Item query error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)
		dbError := errors.New("join failed")

		mock.ExpectQuery(selectOrdersSQL).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total", "created_at"}).
				AddRow(int64(11), int64(3), "2.99", now))
		mock.ExpectQuery(selectOrderItemSQL).WillReturnError(dbError)

		orders, err := repo.ListOrdersByUserID(ctx, 3)

		assert.Nil(t, orders)
		assert.ErrorIs(t, err, dbError)
	})

	t.Run("Order query error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewOrderRepo(db)
		dbError := errors.New("db down")

		mock.ExpectQuery(selectOrdersSQL).WillReturnError(dbError)

		orders, err := repo.ListOrdersByUserID(ctx, 3)

		assert.Nil(t, orders)
		assert.ErrorIs(t, err, dbError)
	})
}
