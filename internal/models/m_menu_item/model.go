package m_menu_item

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the menu_items table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a menu item.
// Fails at commit if the id already exists.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns(),
		[]interface{}{
			data.MenuItemID,
			data.Name,
			data.Description,
			&data.Price,
			&data.OriginalPrice,
			data.Category,
			data.IsAvailable,
			data.IsFeatured,
			data.IsPopular,
			data.Stock,
			data.PreparationTime,
			data.Difficulty,
			data.Discounts,
			data.RatingAverage,
			data.RatingCount,
			data.OrderCount,
			data.Tags,
			data.DietaryTags,
			data.Allergens,
			data.Sizes,
			data.Customizations,
			data.CreatedBy,
			data.Version,
			data.CreatedAt,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific columns.
// updated_at is always set to the commit timestamp.
func (m *Model) UpdateMut(menuItemID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+2)
	values := make([]interface{}, 0, len(updates)+2)

	columns = append(columns, MenuItemID, UpdatedAt)
	values = append(values, menuItemID, spanner.CommitTimestamp)

	for col, val := range updates {
		if col == MenuItemID || col == UpdatedAt {
			continue
		}
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a menu item.
// Reviews are interleaved with ON DELETE CASCADE.
func (m *Model) DeleteMut(menuItemID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{menuItemID})
}
