package list_new

import (
	"context"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/queries"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
)

// Request limits the number of items returned (0 = default).
type Request struct {
	Limit int64
}

// Query lists items still inside the new-item window.
type Query struct {
	readModel contracts.ReadModel
	clock     clock.Clock
}

// NewQuery creates a new list new query.
func NewQuery(readModel contracts.ReadModel, clock clock.Clock) *Query {
	return &Query{
		readModel: readModel,
		clock:     clock,
	}
}

// Execute returns available items created within the last 30 days, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.MenuItemDTO, error) {
	limit, err := queries.NormalizeLimit(req.Limit, queries.DefaultListLimit, queries.MaxListLimit)
	if err != nil {
		return nil, err
	}
	since := q.clock.Now().Add(-domain.NewItemWindow)
	return q.readModel.ListNew(ctx, since, limit)
}
