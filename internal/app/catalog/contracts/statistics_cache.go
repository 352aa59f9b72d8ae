package contracts

import (
	"context"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// StatisticsCache caches the category rollup between catalog writes.
type StatisticsCache interface {
	// Get returns the cached rollup and whether it was present.
	Get(ctx context.Context) ([]domain.CategoryStatistics, bool, error)
	Set(ctx context.Context, stats []domain.CategoryStatistics) error
	Invalidate(ctx context.Context) error
}

// NoopStatisticsCache never stores anything. Used when Redis is not configured.
type NoopStatisticsCache struct{}

func (NoopStatisticsCache) Get(context.Context) ([]domain.CategoryStatistics, bool, error) {
	return nil, false, nil
}
func (NoopStatisticsCache) Set(context.Context, []domain.CategoryStatistics) error { return nil }
func (NoopStatisticsCache) Invalidate(context.Context) error                         { return nil }
