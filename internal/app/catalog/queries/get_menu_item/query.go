package get_menu_item

import (
	"context"
	"strings"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// Request contains the menu item ID to retrieve.
type Request struct {
	MenuItemID string
}

// Query handles the get menu item query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get menu item query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a menu item by ID. Unavailable items are returned too;
// only listings hide them.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.MenuItemDTO, error) {
	if strings.TrimSpace(req.MenuItemID) == "" {
		return nil, domain.NewValidationError(domain.FieldID, "is required")
	}
	return q.readModel.GetByID(ctx, req.MenuItemID)
}
