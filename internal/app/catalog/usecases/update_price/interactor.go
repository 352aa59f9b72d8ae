package update_price

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// Request contains the data needed to change a menu item's base price.
type Request struct {
	MenuItemID    string
	NewPrice      *domain.Money
	ChangedBy     string // User/system identifier
	ChangedReason string // Optional explanation for price change
}

// Interactor handles the update price use case.
type Interactor struct {
	repo             contracts.MenuItemRepository
	outboxRepo       contracts.OutboxRepository
	priceHistoryRepo contracts.PriceHistoryRepository
	statsCache       contracts.StatisticsCache
	committer        contracts.Committer
	clock            clock.Clock
	logger           *slog.Logger
	newID            func() string
}

// NewInteractor creates a new update price interactor.
func NewInteractor(
	repo contracts.MenuItemRepository,
	outboxRepo contracts.OutboxRepository,
	priceHistoryRepo contracts.PriceHistoryRepository,
	statsCache contracts.StatisticsCache,
	committer contracts.Committer,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	return &Interactor{
		repo:             repo,
		outboxRepo:       outboxRepo,
		priceHistoryRepo: priceHistoryRepo,
		statsCache:       statsCache,
		committer:        committer,
		clock:            clock,
		logger:           logger,
		newID:            func() string { return uuid.New().String() },
	}
}

// Execute changes the base price following the Golden Mutation Pattern.
// The original price is left as it was; discounts keep resolving against
// the new base price.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if strings.TrimSpace(req.ChangedBy) == "" {
		return domain.NewValidationError("changed_by", "is required")
	}

	item, err := i.repo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		return err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer item.ClearEvents()

	guard := i.repo.VersionGuard(item)
	oldPrice := item.Price()

	if err := item.SetPrice(req.NewPrice, i.clock.Now()); err != nil {
		return err
	}

	mut, err := i.repo.UpdateMut(item)
	if err != nil {
		return err
	}
	if mut == nil {
		return nil
	}

	plan := committer.NewPlan()
	plan.Add(mut)
	plan.Add(i.priceHistoryRepo.InsertMut(contracts.PriceChange{
		HistoryID:     i.newID(),
		MenuItemID:    item.ID(),
		OldPrice:      oldPrice,
		NewPrice:      item.Price(),
		ChangedBy:     req.ChangedBy,
		ChangedReason: req.ChangedReason,
	}))

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

	if err := i.statsCache.Invalidate(ctx); err != nil {
		i.logger.WarnContext(ctx, "statistics cache invalidation failed", "error", err)
	}

	i.logger.InfoContext(ctx, "menu item price changed",
		"menu_item_id", item.ID(),
		"old_price", oldPrice.String(),
		"new_price", item.Price().String(),
		"changed_by", req.ChangedBy,
	)
	return nil
}
