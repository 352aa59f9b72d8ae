package create_menu_item

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// Request contains the data needed to create a menu item.
type Request struct {
	Name            string
	Description     string
	Price           *domain.Money
	OriginalPrice   *domain.Money // nil = same as Price
	Category        string
	IsAvailable     *bool  // nil = true
	IsFeatured      bool
	IsPopular       bool
	Stock           *int64 // nil = unlimited
	PreparationTime int64
	Difficulty      string
	Discounts       []*domain.Discount
	Tags            []string
	DietaryTags     []string
	Allergens       []string
	Sizes           []domain.Size
	Customizations  []domain.Customization
	CreatedBy       string
}

// Interactor handles the create menu item use case.
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

// NewInteractor creates a new create menu item interactor.
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

// Execute creates a menu item following the Golden Mutation Pattern and
// returns its id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	params, err := i.params(req)
	if err != nil {
		return "", err
	}

	now := i.clock.Now()
	item, err := domain.NewMenuItem(params, now)
	if err != nil {
		return "", err
	}

	plan := committer.NewPlan()

	mut, err := i.repo.InsertMut(item)
	if err != nil {
		return "", err
	}
	plan.Add(mut)

	// The first history entry has no old price.
	plan.Add(i.priceHistoryRepo.InsertMut(contracts.PriceChange{
		HistoryID:     i.newID(),
		MenuItemID:    item.ID(),
		NewPrice:      item.Price(),
		ChangedBy:     item.CreatedBy(),
		ChangedReason: "created",
	}))

	for _, event := range item.DomainEvents() {
		mut, err := i.outboxRepo.InsertMut(event)
		if err != nil {
			return "", err
		}
		plan.Add(mut)
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := i.statsCache.Invalidate(ctx); err != nil {
		i.logger.WarnContext(ctx, "statistics cache invalidation failed", "error", err)
	}

	i.logger.InfoContext(ctx, "menu item created",
		"menu_item_id", item.ID(),
		"category", item.Category(),
		"price", item.Price().String(),
	)
	return item.ID(), nil
}

func (i *Interactor) params(req *Request) (domain.MenuItemParams, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return domain.MenuItemParams{}, err
	}

	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		return domain.MenuItemParams{}, err
	}

	dietary, err := domain.ParseDietaryTags(req.DietaryTags)
	if err != nil {
		return domain.MenuItemParams{}, err
	}
	allergens, err := domain.ParseAllergens(req.Allergens)
	if err != nil {
		return domain.MenuItemParams{}, err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	stock := domain.UnlimitedStock
	if req.Stock != nil {
		stock = *req.Stock
	}

	return domain.MenuItemParams{
		ID:              i.newID(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		Category:        category,
		IsAvailable:     available,
		IsFeatured:      req.IsFeatured,
		IsPopular:       req.IsPopular,
		Stock:           stock,
		PreparationTime: req.PreparationTime,
		Difficulty:      difficulty,
		Discounts:       req.Discounts,
		Tags:            req.Tags,
		DietaryTags:     dietary,
		Allergens:       allergens,
		Sizes:           req.Sizes,
		Customizations:  req.Customizations,
		CreatedBy:       req.CreatedBy,
	}, nil
}
