package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// PriceChange is one entry of a menu item's price history.
type PriceChange struct {
	HistoryID     string
	MenuItemID    string
	OldPrice      *domain.Money // nil for the initial price
	NewPrice      *domain.Money
	ChangedBy     string
	ChangedReason string
	ChangedAt     time.Time
}

// PriceHistoryRepository records and reads price changes.
type PriceHistoryRepository interface {
	// InsertMut creates a mutation recording change. ChangedAt is the commit timestamp.
	InsertMut(change PriceChange) *spanner.Mutation

	// ListByMenuItem returns the latest changes first.
	ListByMenuItem(ctx context.Context, menuItemID string, limit int64) ([]PriceChange, error)
}
