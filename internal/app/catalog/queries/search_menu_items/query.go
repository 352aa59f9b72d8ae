package search_menu_items

import (
	"context"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/search"
)

// Request is a free-text query plus filter options.
type Request struct {
	Text    string
	Options search.Options
}

// Query handles the search menu items query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new search query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute validates the request into a plan and runs it.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.SearchResult, error) {
	plan, err := search.Build(req.Text, req.Options)
	if err != nil {
		return nil, err
	}
	return q.readModel.Search(ctx, plan)
}
