package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/cache"
	appErrors "github.com/aaravmahajanofficial/ecommerce-backend/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-backend/internal/repositories"
	"golang.org/x/sync/singleflight"
)

type ItemService interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByName(ctx context.Context, name string) ([]models.Item, error)
}

type itemService struct {
	repo  repository.ItemRepository
	cache cache.Cache
	group singleflight.Group
}

// NewItemService reads single items through the cache. Concurrent misses
// for the same id share one database query.
func NewItemService(repo repository.ItemRepository, cache cache.Cache) ItemService {
	return &itemService{repo: repo, cache: cache}
}

func (s *itemService) ListItems(ctx context.Context) ([]models.Item, error) {

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list items").WithError(err)
	}

	return items, nil
}

func (s *itemService) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.ItemKey(id)

	var cached models.Item

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Item cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if found {
		return &cached, nil
	}

	// outlives any single caller sharing the flight
	loadCtx := context.WithoutCancel(ctx)

	v, err, _ := s.group.Do(key, func() (any, error) {
		item, err := s.repo.GetItemByID(loadCtx, id)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(loadCtx, key, item, 0); err != nil {
			logger.Warn("Item cache write failed", slog.String("key", key), slog.Any("error", err))
		}

		return item, nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Item not found", slog.Int64("itemID", id))
			return nil, appErrors.NotFoundError("Item not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch item").WithError(err)
	}

	// callers sharing a flight must not share the pointer
	item := *v.(*models.Item)

	return &item, nil
}

func (s *itemService) GetItemsByName(ctx context.Context, name string) ([]models.Item, error) {

	items, err := s.repo.GetItemsByName(ctx, name)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search items").WithError(err)
	}

	if len(items) == 0 {
		middleware.LoggerFromContext(ctx).Warn("No items found", slog.String("name", name))
		return nil, appErrors.NotFoundError("No items found")
	}

	return items, nil
}
