package repo

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_outbox"
	"github.com/light-bringer/menucat-service/internal/pkg/query"
)

func TestEventConditions(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Empty(t, eventConditions(contracts.EventFilter{}))
	})

	t.Run("all filters", func(t *testing.T) {
		conds := eventConditions(contracts.EventFilter{
			EventType:   "menu_item.created",
			AggregateID: "item-1",
			Status:      m_outbox.StatusPending,
		})
		stmt := query.From(m_outbox.TableName).WhereAll(conds...).Count().Build()

		assert.Equal(t,
			"SELECT COUNT(*) FROM outbox_events WHERE event_type = @p0 AND aggregate_id = @p1 AND status = @p2",
			stmt.SQL)
		assert.Equal(t, "menu_item.created", stmt.Params["p0"])
		assert.Equal(t, "item-1", stmt.Params["p1"])
		assert.Equal(t, m_outbox.StatusPending, stmt.Params["p2"])
	})
}

func TestOutboxEventFromData(t *testing.T) {
	processed := testNow.Add(time.Minute)
	data := &m_outbox.Data{
		EventID:     "evt-1",
		EventType:   "menu_item.created",
		AggregateID: "item-1",
		Payload:     spanner.NullJSON{Value: map[string]interface{}{"name": "Cortado"}, Valid: true},
		Status:      m_outbox.StatusCompleted,
		CreatedAt:   testNow,
		ProcessedAt: spanner.NullTime{Time: processed, Valid: true},
		RetryCount:  2,
	}

	event := outboxEventFromData(data)
	assert.Equal(t, "evt-1", event.EventID)
	assert.JSONEq(t, `{"name":"Cortado"}`, event.Payload)
	require.NotNil(t, event.ProcessedAt)
	assert.True(t, event.ProcessedAt.Equal(processed))
	assert.Equal(t, int64(2), event.RetryCount)

	data.ProcessedAt = spanner.NullTime{}
	assert.Nil(t, outboxEventFromData(data).ProcessedAt)
}

func TestEventsReadModel_RejectsUnknownStatus(t *testing.T) {
	// Validation happens before any read, so no client is needed.
	events, total, err := NewEventsReadModel(nil).ListEvents(context.Background(), contracts.EventFilter{Status: "done", Limit: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Nil(t, events)
	assert.Zero(t, total)
}
