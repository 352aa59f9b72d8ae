// Package catalogtest provides in-memory fakes of the catalog contracts for
// usecase and query tests. Nothing here talks to Spanner or Redis.
package catalogtest

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/search"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// Clone copies an aggregate through its persisted state, the way a
// repository load would. No events or dirty fields are carried over.
func Clone(item *domain.MenuItem) *domain.MenuItem {
	return domain.ReconstructMenuItem(domain.MenuItemSnapshot{
		MenuItemParams: domain.MenuItemParams{
			ID:              item.ID(),
			Name:            item.Name(),
			Description:     item.Description(),
			Price:           item.Price(),
			OriginalPrice:   item.OriginalPrice(),
			Category:        item.Category(),
			IsAvailable:     item.IsAvailable(),
			IsFeatured:      item.IsFeatured(),
			IsPopular:       item.IsPopular(),
			Stock:           item.Stock(),
			PreparationTime: item.PreparationTime(),
			Difficulty:      item.Difficulty(),
			Discounts:       item.Discounts(),
			Tags:            item.Tags(),
			DietaryTags:     item.DietaryTags(),
			Allergens:       item.Allergens(),
			Sizes:           item.Sizes(),
			Customizations:  item.Customizations(),
			CreatedBy:       item.CreatedBy(),
		},
		Rating:     item.Rating(),
		OrderCount: item.OrderCount(),
		Version:    item.Version(),
		CreatedAt:  item.CreatedAt(),
		UpdatedAt:  item.UpdatedAt(),
	})
}

func marker(table, id string) *spanner.Mutation {
	return spanner.InsertOrUpdate(table, []string{"id"}, []interface{}{id})
}

// MenuItemRepo is an in-memory MenuItemRepository. Mutations it returns are
// markers; the items themselves are captured in Inserted and Updated.
type MenuItemRepo struct {
	mu       sync.Mutex
	items    map[string]*domain.MenuItem
	Inserted []*domain.MenuItem
	Updated  []*domain.MenuItem
	GetErr   error
}

// NewMenuItemRepo creates a repo seeded with items.
func NewMenuItemRepo(items ...*domain.MenuItem) *MenuItemRepo {
	r := &MenuItemRepo{items: make(map[string]*domain.MenuItem)}
	for _, item := range items {
		r.Put(item)
	}
	return r
}

// Put stores a copy of item.
func (r *MenuItemRepo) Put(item *domain.MenuItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID()] = Clone(item)
}

func (r *MenuItemRepo) InsertMut(item *domain.MenuItem) (*spanner.Mutation, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Inserted = append(r.Inserted, item)
	return marker("menu_items", item.ID()), nil
}

func (r *MenuItemRepo) UpdateMut(item *domain.MenuItem) (*spanner.Mutation, error) {
	if !item.Changes().HasChanges() {
		return nil, nil
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updated = append(r.Updated, item)
	return marker("menu_items", item.ID()), nil
}

func (r *MenuItemRepo) GetByID(_ context.Context, menuItemID string) (*domain.MenuItem, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[menuItemID]
	if !ok {
		return nil, domain.NewNotFoundError("menu item", menuItemID)
	}
	return Clone(item), nil
}

func (r *MenuItemRepo) VersionGuard(item *domain.MenuItem) committer.VersionGuard {
	return committer.VersionGuard{
		Table:           "menu_items",
		Key:             spanner.Key{item.ID()},
		VersionColumn:   "version",
		ExpectedVersion: item.Version(),
	}
}

// OutboxRepo records every event it is asked to persist.
type OutboxRepo struct {
	mu     sync.Mutex
	Events []domain.DomainEvent
	Err    error
}

func (r *OutboxRepo) InsertMut(event domain.DomainEvent) (*spanner.Mutation, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return marker("outbox_events", event.AggregateID()), nil
}

// EventTypes lists the recorded event types in order.
func (r *OutboxRepo) EventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.EventType())
	}
	return types
}

// PriceHistoryRepo records price changes.
type PriceHistoryRepo struct {
	mu      sync.Mutex
	Changes []contracts.PriceChange
}

func (r *PriceHistoryRepo) InsertMut(change contracts.PriceChange) *spanner.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Changes = append(r.Changes, change)
	return marker("price_history", change.HistoryID)
}

func (r *PriceHistoryRepo) ListByMenuItem(_ context.Context, menuItemID string, limit int64) ([]contracts.PriceChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []contracts.PriceChange
	for i := len(r.Changes) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.Changes[i].MenuItemID == menuItemID {
			out = append(out, r.Changes[i])
		}
	}
	return out, nil
}

// Committer records applied plans instead of writing them.
type Committer struct {
	mu     sync.Mutex
	Plans  []*committer.CommitPlan
	Guards []committer.VersionGuard
	Err    error
}

func (c *Committer) Apply(_ context.Context, plan *committer.CommitPlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Plans = append(c.Plans, plan)
	return nil
}

func (c *Committer) ApplyWithVersionCheck(_ context.Context, guard committer.VersionGuard, plan *committer.CommitPlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Guards = append(c.Guards, guard)
	if c.Err != nil {
		return c.Err
	}
	c.Plans = append(c.Plans, plan)
	return nil
}

// StatisticsCache is an in-memory cache counting invalidations.
type StatisticsCache struct {
	mu            sync.Mutex
	stats         []domain.CategoryStatistics
	present       bool
	Invalidations int
	Err           error
}

func (c *StatisticsCache) Get(context.Context) ([]domain.CategoryStatistics, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, false, c.Err
	}
	return c.stats, c.present, nil
}

func (c *StatisticsCache) Set(_ context.Context, stats []domain.CategoryStatistics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.stats, c.present = stats, true
	return nil
}

func (c *StatisticsCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidations++
	if c.Err != nil {
		return c.Err
	}
	c.stats, c.present = nil, false
	return nil
}

// RatingRepo aggregates over an in-memory review list per item.
type RatingRepo struct {
	mu      sync.Mutex
	Reviews map[string][]float64
	Err     error
}

func (r *RatingRepo) RecordReview(_ context.Context, review contracts.NewReview) (domain.RatingSummary, error) {
	if r.Err != nil {
		return domain.RatingSummary{}, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Reviews == nil {
		r.Reviews = make(map[string][]float64)
	}
	all := append(append([]float64(nil), r.Reviews[review.MenuItemID]...), review.Rating)
	s, err := domain.AggregateRatings(review.MenuItemID, all, review.Rating)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	r.Reviews[review.MenuItemID] = all
	return s, nil
}

// ReadModel serves canned results and records the calls it receives.
type ReadModel struct {
	Items      map[string]*contracts.MenuItemDTO
	Result     *contracts.SearchResult
	List       []*contracts.MenuItemDTO
	Statistics []domain.CategoryStatistics
	Err        error

	LastPlan  *search.Plan
	LastLimit int64
	LastSince time.Time
	StatsHits int
}

func (m *ReadModel) GetByID(_ context.Context, menuItemID string) (*contracts.MenuItemDTO, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	dto, ok := m.Items[menuItemID]
	if !ok {
		return nil, domain.NewNotFoundError("menu item", menuItemID)
	}
	return dto, nil
}

func (m *ReadModel) Search(_ context.Context, plan *search.Plan) (*contracts.SearchResult, error) {
	m.LastPlan = plan
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func (m *ReadModel) ListFeatured(_ context.Context, limit int64) ([]*contracts.MenuItemDTO, error) {
	m.LastLimit = limit
	return m.List, m.Err
}

func (m *ReadModel) ListPopular(_ context.Context, limit int64) ([]*contracts.MenuItemDTO, error) {
	m.LastLimit = limit
	return m.List, m.Err
}

func (m *ReadModel) ListNew(_ context.Context, since time.Time, limit int64) ([]*contracts.MenuItemDTO, error) {
	m.LastSince, m.LastLimit = since, limit
	return m.List, m.Err
}

func (m *ReadModel) CategoryStatistics(context.Context) ([]domain.CategoryStatistics, error) {
	m.StatsHits++
	return m.Statistics, m.Err
}

var (
	_ contracts.MenuItemRepository     = (*MenuItemRepo)(nil)
	_ contracts.OutboxRepository       = (*OutboxRepo)(nil)
	_ contracts.PriceHistoryRepository = (*PriceHistoryRepo)(nil)
	_ contracts.Committer              = (*Committer)(nil)
	_ contracts.StatisticsCache        = (*StatisticsCache)(nil)
	_ contracts.RatingRepository       = (*RatingRepo)(nil)
	_ contracts.ReadModel              = (*ReadModel)(nil)
)
