package m_review

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the reviews table, interleaved in menu_items.
const (
	TableName = "reviews"

	MenuItemID = "menu_item_id"
	ReviewID   = "review_id"
	ReviewerID = "reviewer_id"
	Rating     = "rating"
	Comment    = "comment"
	CreatedAt  = "created_at"
)

// Data is one stored review. Rating is FLOAT64 and not range-checked by
// the schema; readers must treat out-of-range values as corrupt.
type Data struct {
	MenuItemID string             `spanner:"menu_item_id"`
	ReviewID   string             `spanner:"review_id"`
	ReviewerID spanner.NullString `spanner:"reviewer_id"`
	Rating     float64            `spanner:"rating"`
	Comment    spanner.NullString `spanner:"comment"`
	CreatedAt  time.Time          `spanner:"created_at"`
}

// Model provides type-safe operations for reviews.
type Model struct{}

// NewModel creates a new review model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a review with a commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{MenuItemID, ReviewID, ReviewerID, Rating, Comment, CreatedAt},
		[]interface{}{data.MenuItemID, data.ReviewID, data.ReviewerID, data.Rating, data.Comment, spanner.CommitTimestamp},
	)
}

// ReplaceMut overwrites the rating and comment of an existing review. The
// review keeps its id, reviewer and creation time.
func (m *Model) ReplaceMut(menuItemID, reviewID string, rating float64, comment spanner.NullString) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{MenuItemID, ReviewID, Rating, Comment},
		[]interface{}{menuItemID, reviewID, rating, comment},
	)
}

// KeyRange selects every review of one menu item.
func (m *Model) KeyRange(menuItemID string) spanner.KeySet {
	return spanner.Key{menuItemID}.AsPrefix()
}
