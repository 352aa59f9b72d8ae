package price_history

import (
	"context"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries"
)

// Request selects an item's price history.
type Request struct {
	MenuItemID string
	Limit      int64
}

// Query lists an item's price changes.
type Query struct {
	repo  contracts.PriceHistoryRepository
	items contracts.MenuItemRepository
}

// NewQuery creates a new price history query.
func NewQuery(repo contracts.PriceHistoryRepository, items contracts.MenuItemRepository) *Query {
	return &Query{
		repo:  repo,
		items: items,
	}
}

// Execute returns the most recent changes first. Unknown items are NotFound
// rather than an empty history.
func (q *Query) Execute(ctx context.Context, req *Request) ([]contracts.PriceChange, error) {
	limit, err := queries.NormalizeLimit(req.Limit, queries.DefaultListLimit, queries.MaxListLimit)
	if err != nil {
		return nil, err
	}
	if _, err := q.items.GetByID(ctx, req.MenuItemID); err != nil {
		return nil, err
	}
	return q.repo.ListByMenuItem(ctx, req.MenuItemID, limit)
}
