package quote_price

import (
	"context"
	"time"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
)

// Request asks for an item's price at an instant (zero = now).
type Request struct {
	MenuItemID string
	At         time.Time
}

// Query resolves an item's effective price.
type Query struct {
	repo       contracts.MenuItemRepository
	calculator *domain.PricingCalculator
	clock      clock.Clock
}

// NewQuery creates a new price quote query using calculator.
func NewQuery(repo contracts.MenuItemRepository, calculator *domain.PricingCalculator, clock clock.Clock) *Query {
	return &Query{
		repo:       repo,
		calculator: calculator,
		clock:      clock,
	}
}

// Execute resolves the price. Unavailable items still have a price.
func (q *Query) Execute(ctx context.Context, req *Request) (domain.PriceQuote, error) {
	item, err := q.repo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	at := req.At
	if at.IsZero() {
		at = q.clock.Now()
	}
	return q.calculator.Resolve(item, at.UTC()), nil
}
