package add_discount

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// Request describes the discount to append.
type Request struct {
	MenuItemID string
	Kind       string
	Value      decimal.Decimal
	StartsAt   *time.Time
	EndsAt     *time.Time
	Active     bool
}

// Interactor handles the add discount use case.
type Interactor struct {
	repo       contracts.MenuItemRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	logger     *slog.Logger
}

// NewInteractor creates a new add discount interactor.
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

// Execute appends the discount and returns its position in the item's list.
// Position matters: the first qualifying discount in list order is applied.
func (i *Interactor) Execute(ctx context.Context, req *Request) (int, error) {
	kind, err := domain.ParseDiscountKind(req.Kind)
	if err != nil {
		return 0, err
	}
	discount, err := domain.NewDiscount(kind, req.Value, req.StartsAt, req.EndsAt, req.Active)
	if err != nil {
		return 0, err
	}

	item, err := i.repo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		return 0, err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer item.ClearEvents()

	guard := i.repo.VersionGuard(item)

	if err := item.AddDiscount(discount, i.clock.Now()); err != nil {
		return 0, err
	}

	mut, err := i.repo.UpdateMut(item)
	if err != nil {
		return 0, err
	}

	plan := committer.NewPlan()
	plan.Add(mut)
	for _, event := range item.DomainEvents() {
		mut, err := i.outboxRepo.InsertMut(event)
		if err != nil {
			return 0, err
		}
		plan.Add(mut)
	}

	// The stored list is rewritten whole, so a concurrent edit must not be lost.
	if err := i.committer.ApplyWithVersionCheck(ctx, guard, plan); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	position := len(item.Discounts()) - 1
	i.logger.InfoContext(ctx, "discount added",
		"menu_item_id", item.ID(),
		"position", position,
		"kind", kind,
		"value", req.Value.String(),
	)
	return position, nil
}
