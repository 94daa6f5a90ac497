package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/google/uuid"
)

// Cache is a JSON read-through cache. A miss is reported as found=false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const productKeyPrefix = "product"

func ProductKey(id uuid.UUID) string {
	return productKeyPrefix + ":" + id.String()
}

// Fetch returns the cached value for key, or calls load and caches its result.
// Cache failures are logged and never fail the read.
func Fetch[T any](ctx context.Context, c Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {

	logger := middleware.LoggerFromContext(ctx)

	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, 0); err != nil {
		logger.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
