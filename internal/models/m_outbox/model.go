package m_outbox

import (
	"cloud.google.com/go/spanner"
)

// Model builds mutations for menu item events.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut queues a pending event about menuItemID. created_at takes the
// commit timestamp so the feed orders like the item writes that produced it.
func (m *Model) InsertMut(eventID, eventType, menuItemID string, payload interface{}) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns(),
		[]interface{}{
			eventID,
			eventType,
			menuItemID,
			spanner.NullJSON{Value: payload, Valid: payload != nil},
			StatusPending,
			spanner.CommitTimestamp,
			spanner.NullTime{},
			int64(0),
			spanner.NullString{},
		},
	)
}

// MarkCompletedMut records that the relay delivered an event.
func (m *Model) MarkCompletedMut(eventID string) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{EventID, Status, ProcessedAt},
		[]interface{}{eventID, StatusCompleted, spanner.CommitTimestamp},
	)
}
