package cache

import (
	"context"
	"strconv"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

func ItemKey(id int64) string {
	return Key(ItemKeyPrefix, strconv.FormatInt(id, 10))
}

const (
	ItemKeyPrefix = "item"
)
