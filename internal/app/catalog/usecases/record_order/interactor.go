package record_order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// Request records that quantity units of an item were ordered.
type Request struct {
	MenuItemID string
	Quantity   int64
}

// Response is the item's counters after the order.
type Response struct {
	OrderCount int64
	Stock      int64
}

// Interactor handles the record order use case.
type Interactor struct {
	repo       contracts.MenuItemRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	logger     *slog.Logger
}

// NewInteractor creates a new record order interactor.
func NewInteractor(
	repo contracts.MenuItemRepository,
	outboxRepo contracts.OutboxRepository,
	committer contracts.Committer,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute bumps the order counter and draws down finite stock.
// The version check makes concurrent orders for the same item serialize:
// the loser gets a version conflict instead of overselling.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	item, err := i.repo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		return nil, err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer item.ClearEvents()

	guard := i.repo.VersionGuard(item)

	if err := item.RecordOrder(req.Quantity, i.clock.Now()); err != nil {
		return nil, err
	}

	mut, err := i.repo.UpdateMut(item)
	if err != nil {
		return nil, err
	}

	plan := committer.NewPlan()
	plan.Add(mut)
	for _, event := range item.DomainEvents() {
		mut, err := i.outboxRepo.InsertMut(event)
		if err != nil {
			return nil, err
		}
		plan.Add(mut)
	}

	if err := i.committer.ApplyWithVersionCheck(ctx, guard, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.DebugContext(ctx, "order recorded",
		"menu_item_id", item.ID(),
		"quantity", req.Quantity,
		"order_count", item.OrderCount(),
	)
	return &Response{OrderCount: item.OrderCount(), Stock: item.Stock()}, nil
}
