package cache

import (
	"context"

	"github.com/jonwraymond/memocache/health"
)

// Check reports cache health from the number of stored entries against the
// thresholds set with WithHealthThresholds. The store is unbounded, so the
// entry count is the signal worth watching.
func (c *Cache) Check(ctx context.Context) health.Result {
	if c == nil {
		return health.Unhealthy("cache is nil", ErrNilCache)
	}

	checker := health.NewThresholdChecker(c.name, c.thresholds, func(context.Context) (float64, error) {
		return float64(c.store.Len()), nil
	})

	result := checker.Check(ctx)
	if result.Details != nil {
		result.Details["pending_expiries"] = c.PendingExpiries()
	}
	return result
}

var _ health.Checker = (*Cache)(nil)
