package utils

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultQueryTimeout bounds one repository statement unless PG_QUERY_TIMEOUT overrides it.
const DefaultQueryTimeout = 5 * time.Second

var queryTimeout atomic.Int64

func init() {
	queryTimeout.Store(int64(DefaultQueryTimeout))
}

// SetQueryTimeout replaces the per-statement deadline. Non-positive values restore the default.
func SetQueryTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultQueryTimeout
	}

	queryTimeout.Store(int64(d))
}

func QueryTimeout() time.Duration {
	return time.Duration(queryTimeout.Load())
}

// WithDBTimeout derives the context a single statement runs under.
// A parent deadline that expires sooner still applies.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, QueryTimeout())
}
