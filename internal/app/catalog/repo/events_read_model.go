package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_outbox"
	"github.com/light-bringer/menucat-service/internal/pkg/query"
)

// EventsReadModel implements the EventsReadModel interface for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

var _ contracts.EventsReadModel = (*EventsReadModel)(nil)

// ListEvents returns outbox events newest first along with the number of
// events matching the filter (not just the returned page).
func (r *EventsReadModel) ListEvents(ctx context.Context, filter contracts.EventFilter) ([]*contracts.OutboxEvent, int64, error) {
	if filter.Status != "" && !m_outbox.KnownStatus(filter.Status) {
		return nil, 0, domain.NewValidationError("status", "must be pending, processing, completed or failed")
	}

	b := query.From(m_outbox.TableName).WhereAll(eventConditions(filter)...)

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	stmt := b.Select(m_outbox.Columns()...).
		OrderBy(m_outbox.CreatedAt, query.Desc).
		ThenBy(m_outbox.EventID, query.Asc).
		Limit(filter.Limit).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	events := make([]*contracts.OutboxEvent, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, ClassifyError("list events", err)
		}

		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, outboxEventFromData(&data))
	}

	countIter := txn.Query(ctx, b.Count().Build())
	defer countIter.Stop()

	row, err := countIter.Next()
	if err != nil {
		return nil, 0, ClassifyError("count events", err)
	}
	var total int64
	if err := row.Columns(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to parse event count: %w", err)
	}

	return events, total, nil
}

func eventConditions(filter contracts.EventFilter) []query.Condition {
	var conds []query.Condition
	if filter.EventType != "" {
		conds = append(conds, query.Eq(m_outbox.EventType, filter.EventType))
	}
	if filter.AggregateID != "" {
		conds = append(conds, query.Eq(m_outbox.AggregateID, filter.AggregateID))
	}
	if filter.Status != "" {
		conds = append(conds, query.Eq(m_outbox.Status, filter.Status))
	}
	return conds
}

func outboxEventFromData(data *m_outbox.Data) *contracts.OutboxEvent {
	event := &contracts.OutboxEvent{
		EventID:     data.EventID,
		EventType:   data.EventType,
		AggregateID: data.AggregateID,
		Payload:     data.Payload.String(),
		Status:      data.Status,
		CreatedAt:   data.CreatedAt,
		RetryCount:  data.RetryCount,
	}
	if data.ProcessedAt.Valid {
		t := data.ProcessedAt.Time
		event.ProcessedAt = &t
	}
	return event
}
