package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// MenuItemRepository defines persistence for the MenuItem aggregate.
// Repositories return mutations, they don't apply them.
type MenuItemRepository interface {
	// InsertMut validates the item and returns an insert mutation.
	InsertMut(item *domain.MenuItem) (*spanner.Mutation, error)

	// UpdateMut validates the item and returns a mutation writing only
	// dirty columns plus version+1. Returns nil when nothing changed.
	UpdateMut(item *domain.MenuItem) (*spanner.Mutation, error)

	// GetByID loads and reconstructs an aggregate.
	GetByID(ctx context.Context, menuItemID string) (*domain.MenuItem, error)

	// VersionGuard describes the optimistic lock for item's loaded version.
	VersionGuard(item *domain.MenuItem) committer.VersionGuard
}
