package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/repo"
	"github.com/light-bringer/menucat-service/internal/models/m_outbox"
	"github.com/light-bringer/menucat-service/internal/models/m_review"
)

// CreateTestMenuItem inserts a menu item directly, bypassing the use cases.
// mutate may adjust the default Flat White params before insertion.
func CreateTestMenuItem(t *testing.T, client *spanner.Client, createdAt time.Time, mutate func(p *domain.MenuItemParams)) string {
	t.Helper()

	p := catalogtest.Params(uuid.New().String())
	if mutate != nil {
		mutate(&p)
	}
	item, err := domain.NewMenuItem(p, createdAt)
	require.NoError(t, err, "invalid test menu item")

	mut, err := repo.NewMenuItemRepo(client).InsertMut(item)
	require.NoError(t, err)

	_, err = client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to create test menu item")

	return item.ID()
}

// InsertRawReview stores a review without validating the rating, so tests
// can plant corrupt data.
func InsertRawReview(t *testing.T, client *spanner.Client, menuItemID string, rating float64) {
	t.Helper()

	mut := m_review.NewModel().InsertMut(&m_review.Data{
		MenuItemID: menuItemID,
		ReviewID:   uuid.New().String(),
		Rating:     rating,
	})
	_, err := client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to insert review")
}

// AssertOutboxEvent verifies an outbox event exists with the given event type.
func AssertOutboxEvent(t *testing.T, client *spanner.Client, eventType string) {
	t.Helper()

	stmt := spanner.Statement{
		SQL:    "SELECT event_id FROM outbox_events WHERE event_type = @eventType",
		Params: map[string]interface{}{"eventType": eventType},
	}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "outbox event not found for type: %s", eventType)
	require.NotNil(t, row, "outbox event not found for type: %s", eventType)
}

// AssertOutboxEventCount verifies the number of events recorded for an aggregate.
func AssertOutboxEventCount(t *testing.T, client *spanner.Client, aggregateID string, expectedCount int) {
	t.Helper()

	stmt := spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM outbox_events WHERE aggregate_id = @id",
		Params: map[string]interface{}{"id": aggregateID},
	}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query outbox event count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected outbox event count")
}

// CreateTestOutboxEvent creates a pending outbox event.
func CreateTestOutboxEvent(t *testing.T, client *spanner.Client, eventType string, aggregateID string) string {
	t.Helper()

	eventID := uuid.New().String()
	mutation := m_outbox.NewModel().InsertMut(eventID, eventType, aggregateID, map[string]string{"menu_item_id": aggregateID})
	_, err := client.Apply(context.Background(), []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to create test outbox event")

	return eventID
}

// MarkEventCompleted moves an outbox event to completed.
func MarkEventCompleted(t *testing.T, client *spanner.Client, eventID string) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_outbox.NewModel().MarkCompletedMut(eventID)})
	require.NoError(t, err, "failed to mark event completed")
}
