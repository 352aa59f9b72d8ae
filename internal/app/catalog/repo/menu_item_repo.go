package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_menu_item"
	"github.com/light-bringer/menucat-service/internal/pkg/committer"
)

// MenuItemRepo implements MenuItemRepository for Spanner.
type MenuItemRepo struct {
	client *spanner.Client
	model  *m_menu_item.Model
}

// NewMenuItemRepo creates a new MenuItemRepo.
func NewMenuItemRepo(client *spanner.Client) *MenuItemRepo {
	return &MenuItemRepo{
		client: client,
		model:  m_menu_item.NewModel(),
	}
}

var _ contracts.MenuItemRepository = (*MenuItemRepo)(nil)

// InsertMut validates item and creates its insert mutation.
func (r *MenuItemRepo) InsertMut(item *domain.MenuItem) (*spanner.Mutation, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return r.model.InsertMut(domainToData(item)), nil
}

// UpdateMut validates item and writes only the dirty columns.
func (r *MenuItemRepo) UpdateMut(item *domain.MenuItem) (*spanner.Mutation, error) {
	changes := item.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	data := domainToData(item)
	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_menu_item.Name] = data.Name
	}
	if changes.Dirty(domain.FieldDescription) {
		updates[m_menu_item.Description] = data.Description
	}
	if changes.Dirty(domain.FieldPrice) {
		updates[m_menu_item.Price] = &data.Price
	}
	if changes.Dirty(domain.FieldOriginalPrice) {
		updates[m_menu_item.OriginalPrice] = &data.OriginalPrice
	}
	if changes.Dirty(domain.FieldCategory) {
		updates[m_menu_item.Category] = data.Category
	}
	if changes.Dirty(domain.FieldAvailable) {
		updates[m_menu_item.IsAvailable] = data.IsAvailable
	}
	if changes.Dirty(domain.FieldFeatured) {
		updates[m_menu_item.IsFeatured] = data.IsFeatured
	}
	if changes.Dirty(domain.FieldPopular) {
		updates[m_menu_item.IsPopular] = data.IsPopular
	}
	if changes.Dirty(domain.FieldStock) {
		updates[m_menu_item.Stock] = data.Stock
	}
	if changes.Dirty(domain.FieldPreparationTime) {
		updates[m_menu_item.PreparationTime] = data.PreparationTime
	}
	if changes.Dirty(domain.FieldDifficulty) {
		updates[m_menu_item.Difficulty] = data.Difficulty
	}
	if changes.Dirty(domain.FieldDiscounts) {
		updates[m_menu_item.Discounts] = data.Discounts
	}
	if changes.Dirty(domain.FieldRating) {
		updates[m_menu_item.RatingAverage] = data.RatingAverage
		updates[m_menu_item.RatingCount] = data.RatingCount
	}
	if changes.Dirty(domain.FieldOrderCount) {
		updates[m_menu_item.OrderCount] = data.OrderCount
	}
	if changes.Dirty(domain.FieldTags) {
		updates[m_menu_item.Tags] = data.Tags
	}
	if changes.Dirty(domain.FieldDietaryTags) {
		updates[m_menu_item.DietaryTags] = data.DietaryTags
	}
	if changes.Dirty(domain.FieldAllergens) {
		updates[m_menu_item.Allergens] = data.Allergens
	}
	if changes.Dirty(domain.FieldSizes) {
		updates[m_menu_item.Sizes] = data.Sizes
	}
	if changes.Dirty(domain.FieldCustomizations) {
		updates[m_menu_item.Customizations] = data.Customizations
	}

	if len(updates) == 0 {
		return nil, nil
	}

	// Increment version for optimistic locking
	updates[m_menu_item.Version] = item.Version() + 1

	return r.model.UpdateMut(item.ID(), updates), nil
}

// GetByID retrieves a menu item by ID, reconstructing the aggregate.
func (r *MenuItemRepo) GetByID(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	row, err := r.client.Single().ReadRow(ctx, m_menu_item.TableName, spanner.Key{menuItemID}, m_menu_item.Columns())
	if err != nil {
		if isRowNotFound(err) {
			return nil, domain.NewNotFoundError("menu item", menuItemID)
		}
		return nil, ClassifyError("read menu item", err)
	}
	return rowToDomain(row)
}

// VersionGuard describes the optimistic lock on the item's loaded version.
func (r *MenuItemRepo) VersionGuard(item *domain.MenuItem) committer.VersionGuard {
	return committer.VersionGuard{
		Table:           m_menu_item.TableName,
		Key:             spanner.Key{item.ID()},
		VersionColumn:   m_menu_item.Version,
		ExpectedVersion: item.Version(),
	}
}

func rowToDomain(row *spanner.Row) (*domain.MenuItem, error) {
	var data m_menu_item.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse menu item: %w", err)
	}
	return dataToDomain(&data)
}
