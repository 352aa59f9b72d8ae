package category_statistics

import (
	"context"
	"log/slog"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// Response is the per-category rollup.
type Response struct {
	Categories []domain.CategoryStatistics
	Total      int64
	Cached     bool
}

// Query handles the category statistics query use case.
type Query struct {
	readModel contracts.ReadModel
	cache     contracts.StatisticsCache
	logger    *slog.Logger
}

// NewQuery creates a new category statistics query.
func NewQuery(readModel contracts.ReadModel, cache contracts.StatisticsCache, logger *slog.Logger) *Query {
	return &Query{
		readModel: readModel,
		cache:     cache,
		logger:    logger,
	}
}

// Execute returns the rollup, from cache when possible. Cache failures fall
// back to the store and are only logged.
func (q *Query) Execute(ctx context.Context) (*Response, error) {
	stats, found, err := q.cache.Get(ctx)
	if err != nil {
		q.logger.WarnContext(ctx, "statistics cache read failed", "error", err)
	}
	if found {
		return &Response{Categories: stats, Total: domain.TotalCount(stats), Cached: true}, nil
	}

	stats, err = q.readModel.CategoryStatistics(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortCategoryStatistics(stats)

	if err := q.cache.Set(ctx, stats); err != nil {
		q.logger.WarnContext(ctx, "statistics cache write failed", "error", err)
	}

	return &Response{Categories: stats, Total: domain.TotalCount(stats)}, nil
}
