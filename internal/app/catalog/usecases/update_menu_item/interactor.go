package update_menu_item

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// Request contains a partial update. Nil fields are left unchanged.
type Request struct {
	MenuItemID      string
	ExpectedVersion *int64 // optimistic lock; nil = last write wins
	Name            *string
	Description     *string
	OriginalPrice   *domain.Money
	Category        *string
	IsAvailable     *bool
	IsFeatured      *bool
	IsPopular       *bool
	Stock           *int64
	PreparationTime *int64
	Difficulty      *string
	Tags            *[]string
	DietaryTags     *[]string
	Allergens       *[]string
	Sizes           *[]domain.Size
	Customizations  *[]domain.Customization
}

// Interactor handles the update menu item use case.
type Interactor struct {
	repo       contracts.MenuItemRepository
	outboxRepo contracts.OutboxRepository
	statsCache contracts.StatisticsCache
	committer  contracts.Committer
	clock      clock.Clock
	logger     *slog.Logger
}

// NewInteractor creates a new update menu item interactor.
func NewInteractor(
	repo contracts.MenuItemRepository,
	outboxRepo contracts.OutboxRepository,
	statsCache contracts.StatisticsCache,
	committer contracts.Committer,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		statsCache: statsCache,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute applies the partial update and returns the item's new version.
func (i *Interactor) Execute(ctx context.Context, req *Request) (int64, error) {
	update, err := toDetailsUpdate(req)
	if err != nil {
		return 0, err
	}

	item, err := i.repo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		return 0, err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer item.ClearEvents()

	if req.ExpectedVersion != nil && *req.ExpectedVersion != item.Version() {
		return 0, fmt.Errorf("menu item %s is at version %d, expected %d: %w",
			item.ID(), item.Version(), *req.ExpectedVersion, domain.ErrVersionConflict)
	}

	guard := i.repo.VersionGuard(item)

	if err := item.UpdateDetails(update, i.clock.Now()); err != nil {
		return 0, err
	}

	plan := committer.NewPlan()

	mut, err := i.repo.UpdateMut(item)
	if err != nil {
		return 0, err
	}
	if mut == nil {
		return item.Version(), nil
	}
	plan.Add(mut)

	for _, event := range item.DomainEvents() {
		mut, err := i.outboxRepo.InsertMut(event)
		if err != nil {
			return 0, err
		}
		plan.Add(mut)
	}

	if req.ExpectedVersion != nil {
		err = i.committer.ApplyWithVersionCheck(ctx, guard, plan)
	} else {
		err = i.committer.Apply(ctx, plan)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if affectsStatistics(item.Changes()) {
		if err := i.statsCache.Invalidate(ctx); err != nil {
			i.logger.WarnContext(ctx, "statistics cache invalidation failed", "error", err)
		}
	}

	i.logger.InfoContext(ctx, "menu item updated",
		"menu_item_id", item.ID(),
		"fields", item.Changes().DirtyFields(),
	)
	return item.Version() + 1, nil
}

func affectsStatistics(changes *domain.ChangeTracker) bool {
	return changes.Any(domain.FieldCategory, domain.FieldAvailable, domain.FieldPrice)
}

func toDetailsUpdate(req *Request) (domain.DetailsUpdate, error) {
	u := domain.DetailsUpdate{
		Name:            req.Name,
		Description:     req.Description,
		OriginalPrice:   req.OriginalPrice,
		IsAvailable:     req.IsAvailable,
		IsFeatured:      req.IsFeatured,
		IsPopular:       req.IsPopular,
		Stock:           req.Stock,
		PreparationTime: req.PreparationTime,
		Tags:            req.Tags,
		Sizes:           req.Sizes,
		Customizations:  req.Customizations,
	}

	if req.Category != nil {
		c, err := domain.ParseCategory(*req.Category)
		if err != nil {
			return u, err
		}
		u.Category = &c
	}
	if req.Difficulty != nil {
		d, err := domain.ParseDifficulty(*req.Difficulty)
		if err != nil {
			return u, err
		}
		u.Difficulty = &d
	}
	if req.DietaryTags != nil {
		tags, err := domain.ParseDietaryTags(*req.DietaryTags)
		if err != nil {
			return u, err
		}
		u.DietaryTags = &tags
	}
	if req.Allergens != nil {
		allergens, err := domain.ParseAllergens(*req.Allergens)
		if err != nil {
			return u, err
		}
		u.Allergens = &allergens
	}
	return u, nil
}
