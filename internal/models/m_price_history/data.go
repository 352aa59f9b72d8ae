package m_price_history

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a price history record in the database.
type Data struct {
	HistoryID     string              `spanner:"history_id"`
	MenuItemID    string              `spanner:"menu_item_id"`
	OldPrice      spanner.NullNumeric `spanner:"old_price"`
	NewPrice      big.Rat             `spanner:"new_price"`
	ChangedBy     spanner.NullString  `spanner:"changed_by"`
	ChangedReason spanner.NullString  `spanner:"changed_reason"`
	ChangedAt     time.Time           `spanner:"changed_at"`
}

// Model provides type-safe database operations for price history.
type Model struct{}

// NewModel creates a new price history model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a price history record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName,
		m.ReadColumns(),
		[]interface{}{
			data.HistoryID,
			data.MenuItemID,
			data.OldPrice,
			&data.NewPrice,
			data.ChangedBy,
			data.ChangedReason,
			spanner.CommitTimestamp,
		},
	)
}

// ReadColumns returns the column names for reading price history.
func (m *Model) ReadColumns() []string {
	return []string{
		HistoryID,
		MenuItemID,
		OldPrice,
		NewPrice,
		ChangedBy,
		ChangedReason,
		ChangedAt,
	}
}
