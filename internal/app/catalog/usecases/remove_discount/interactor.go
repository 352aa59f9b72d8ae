package remove_discount

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// Request identifies the discount to remove by its position.
type Request struct {
	MenuItemID string
	Index      int
}

// Interactor handles the remove discount use case.
type Interactor struct {
	repo       contracts.MenuItemRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	logger     *slog.Logger
}

// NewInteractor creates a new remove discount interactor.
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

// Execute removes the discount at req.Index. Later discounts shift down.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	item, err := i.repo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		return err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer item.ClearEvents()

	guard := i.repo.VersionGuard(item)

	if err := item.RemoveDiscount(req.Index, i.clock.Now()); err != nil {
		return err
	}

	mut, err := i.repo.UpdateMut(item)
	if err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(mut)
	for _, event := range item.DomainEvents() {
		mut, err := i.outboxRepo.InsertMut(event)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}

	if err := i.committer.ApplyWithVersionCheck(ctx, guard, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.InfoContext(ctx, "discount removed", "menu_item_id", item.ID(), "position", req.Index)
	return nil
}
