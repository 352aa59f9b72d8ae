package list_featured

import (
	"context"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries"
)

// Request limits the number of items returned (0 = default).
type Request struct {
	Limit int64
}

// Query handles the list featured query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list featured query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute returns available featured items by order count, then rating.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.MenuItemDTO, error) {
	limit, err := queries.NormalizeLimit(req.Limit, queries.DefaultListLimit, queries.MaxListLimit)
	if err != nil {
		return nil, err
	}
	return q.readModel.ListFeatured(ctx, limit)
}
